// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `---
title: "Cox Proportional Hazards"
author: Zia
---

# Introduction

Survival analysis models time-to-event data.

` + "```{r setup, echo=FALSE, message=FALSE}" + `
library(survival)
library(survminer)
` + "```" + `

The survfit function estimates the survival curve.

` + "```{r}" + `
fit <- survfit(Surv(time, status) ~ 1, data = lung)
` + "```" + `

## Interpretation

Steeper drops indicate higher hazard.
`

func TestParse_Interleaving(t *testing.T) {
	src := Parse(sampleDoc, Options{})

	require.Len(t, src.Blocks, 5)
	assert.Equal(t, BlockMarkup, src.Blocks[0].Kind)
	assert.Equal(t, BlockCode, src.Blocks[1].Kind)
	assert.Equal(t, BlockMarkup, src.Blocks[2].Kind)
	assert.Equal(t, BlockCode, src.Blocks[3].Kind)
	assert.Equal(t, BlockMarkup, src.Blocks[4].Kind)

	assert.Equal(t, 2, src.CodeBlocks())
	assert.Empty(t, src.Warnings)
}

func TestParse_FrontMatter(t *testing.T) {
	src := Parse(sampleDoc, Options{})

	require.NotNil(t, src.Meta)
	assert.Equal(t, "Cox Proportional Hazards", src.Meta.Title)
	assert.Equal(t, "Zia", src.Meta.Raw["author"])

	// The header must not leak into prose.
	assert.True(t, strings.HasPrefix(src.Blocks[0].Text, "# Introduction"))
}

func TestParse_ChunkHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantTag string
		wantRaw string
	}{
		{"braced with label and options", "```{r setup, echo=FALSE, message=FALSE}", "r", "setup, echo=FALSE, message=FALSE"},
		{"braced language only", "```{r}", "r", ""},
		{"braced comma separated", "```{r, fig.width=7}", "r", "fig.width=7"},
		{"bare language", "```python", "python", ""},
		{"untagged", "```", "", ""},
		{"mixed case preserved", "```{R}", "R", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.header + "\nx <- 1\n```\n"
			src := Parse(doc, Options{})

			require.Len(t, src.Blocks, 1)
			block := src.Blocks[0]
			assert.Equal(t, BlockCode, block.Kind)
			assert.Equal(t, tt.wantTag, block.Tag)
			assert.Equal(t, strings.ToLower(tt.wantTag), block.Language)
			assert.Equal(t, tt.wantRaw, block.RawOptions)
			assert.Equal(t, "x <- 1", block.Text)
		})
	}
}

func TestParse_ChunkHeaderLabel(t *testing.T) {
	doc := "```{r km-plot, echo=FALSE}\nplot(fit)\n```\n"
	src := Parse(doc, Options{})

	require.Len(t, src.Blocks, 1)
	opts := src.Blocks[0].Options
	require.Len(t, opts, 2)
	assert.Equal(t, ChunkOption{Key: "km-plot"}, opts[0])
	assert.Equal(t, ChunkOption{Key: "echo", Value: "FALSE"}, opts[1])
	assert.Equal(t, "km-plot, echo=FALSE", src.Blocks[0].RawOptions)
}

func TestParse_OptionLinesStayInBody(t *testing.T) {
	doc := "```{r}\n#| fig-width: 7\n#| echo: false\nplot(fit)\n```\n"
	src := Parse(doc, Options{})

	require.Len(t, src.Blocks, 1)
	assert.Equal(t, "#| fig-width: 7\n#| echo: false\nplot(fit)", src.Blocks[0].Text)
}

func TestParse_ProseOnly(t *testing.T) {
	src := Parse("# Censoring\n\nRight censoring is the most common kind.\n", Options{})

	require.Len(t, src.Blocks, 1)
	assert.Equal(t, BlockMarkup, src.Blocks[0].Kind)
	assert.Equal(t, 0, src.CodeBlocks())
}

func TestParse_EmptyDocument(t *testing.T) {
	src := Parse("", Options{})
	assert.Empty(t, src.Blocks)

	src = Parse("\n\n\n", Options{})
	assert.Empty(t, src.Blocks)
}

func TestParse_UnterminatedFence(t *testing.T) {
	doc := "Intro.\n\n```{r}\nfit <- coxph(Surv(time, status) ~ age, lung)\nsummary(fit)\n"
	src := Parse(doc, Options{})

	require.Len(t, src.Blocks, 2)
	last := src.Blocks[1]
	assert.Equal(t, BlockCode, last.Kind)
	assert.True(t, last.Unterminated)
	assert.Equal(t, "fit <- coxph(Surv(time, status) ~ age, lung)\nsummary(fit)", last.Text)

	require.Len(t, src.Warnings, 1)
	assert.Contains(t, src.Warnings[0], "unterminated fence")
	assert.Contains(t, src.Warnings[0], "line 3")
}

func TestParse_AdjacentFences(t *testing.T) {
	// No markup cell between back-to-back fences.
	doc := "```{r}\na\n```\n\n```{r}\nb\n```\n"
	src := Parse(doc, Options{})

	require.Len(t, src.Blocks, 2)
	assert.Equal(t, BlockCode, src.Blocks[0].Kind)
	assert.Equal(t, BlockCode, src.Blocks[1].Kind)
}

func TestParse_IndentedFence(t *testing.T) {
	doc := "- item\n\n  ```{r}\n  x <- 1\n  ```\n\ntail\n"
	src := Parse(doc, Options{})

	require.Len(t, src.Blocks, 3)
	assert.Equal(t, BlockCode, src.Blocks[1].Kind)
	assert.Equal(t, "  x <- 1", src.Blocks[1].Text)
}

func TestParse_BadFrontMatterKeptAsProse(t *testing.T) {
	doc := "---\n:[ not yaml\n---\n\nProse.\n"
	src := Parse(doc, Options{})

	assert.Nil(t, src.Meta)
	require.NotEmpty(t, src.Warnings)
	assert.Contains(t, src.Warnings[0], "front matter")
	// Everything stays in the document as prose.
	require.Len(t, src.Blocks, 1)
	assert.Contains(t, src.Blocks[0].Text, "Prose.")
}

func TestParse_StripLayoutBlocks(t *testing.T) {
	doc := "Before.\n\n::: {layout-ncol=2}\n![a](a.png)\n![b](b.png)\n:::\n\nAfter.\n"

	kept := Parse(doc, Options{})
	require.Len(t, kept.Blocks, 1)
	assert.Contains(t, kept.Blocks[0].Text, "layout-ncol")

	stripped := Parse(doc, Options{StripLayoutBlocks: true})
	require.Len(t, stripped.Blocks, 1)
	assert.NotContains(t, stripped.Blocks[0].Text, "layout-ncol")
	assert.Contains(t, stripped.Blocks[0].Text, "Before.")
	assert.Contains(t, stripped.Blocks[0].Text, "After.")
}

func TestParse_CRLFNormalized(t *testing.T) {
	doc := "Prose.\r\n\r\n```{r}\r\nx <- 1\r\n```\r\n"
	src := Parse(doc, Options{})

	require.Len(t, src.Blocks, 2)
	assert.Equal(t, "x <- 1", src.Blocks[1].Text)
}
