// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package qmd parses literate tutorial documents (Quarto .qmd and R Markdown
// .Rmd) into an ordered sequence of prose and fenced-code blocks.
package qmd

import (
	"fmt"
	"strings"
)

// BlockKind distinguishes the two block variants.
type BlockKind string

const (
	BlockMarkup BlockKind = "markup"
	BlockCode   BlockKind = "code"
)

// ChunkOption is one option from a chunk header, carried verbatim. Options
// are opaque pass-through metadata; keys and values are never interpreted.
type ChunkOption struct {
	Key   string
	Value string
}

// Block is one ordered span of a source document: either a prose run between
// fences or the body of one fenced code block.
type Block struct {
	Kind BlockKind

	// Text is the prose (markup) or code body (code), without the fence lines.
	Text string

	// Tag is the declared language identifier exactly as written in the
	// chunk header. Empty for untagged fences.
	Tag string

	// Language is Tag lowercased, for comparisons.
	Language string

	// RawOptions is the chunk header's option string, verbatim.
	RawOptions string

	// Options is RawOptions split on commas into key/value pairs.
	Options []ChunkOption

	// StartLine is the 1-based source line of the block's first line
	// (the opening fence line for code blocks).
	StartLine int

	// Unterminated marks a code block whose fence was never closed; its
	// body runs to end of file.
	Unterminated bool
}

// FrontMatter is the document's YAML header, when present.
type FrontMatter struct {
	// Title is the front matter "title" entry, if it is a string.
	Title string

	// Raw holds the full decoded mapping.
	Raw map[string]any
}

// Source is the parse result for one document.
type Source struct {
	Meta     *FrontMatter
	Blocks   []Block
	Warnings []string
}

// CodeBlocks returns the number of code blocks in the document.
func (s *Source) CodeBlocks() int {
	n := 0
	for _, b := range s.Blocks {
		if b.Kind == BlockCode {
			n++
		}
	}
	return n
}

// Options controls optional parser behavior.
type Options struct {
	// StripLayoutBlocks removes Quarto ::: {layout-...} ... ::: spans from
	// prose before blocks are built.
	StripLayoutBlocks bool
}

// Parse splits content into ordered markup and code blocks. Prose between
// fences becomes one markup block per span; empty spans are dropped. A fence
// with no matching close becomes an unterminated code block running to end
// of file, recorded as a warning rather than an error.
func Parse(content string, opts Options) *Source {
	src := &Source{}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	lines = extractFrontMatter(src, lines)
	if opts.StripLayoutBlocks {
		lines = stripLayoutBlocks(lines)
	}

	var prose []string
	proseStart := 1
	flushProse := func() {
		text := strings.TrimSpace(strings.Join(prose, "\n"))
		if text != "" {
			src.Blocks = append(src.Blocks, Block{
				Kind:      BlockMarkup,
				Text:      text,
				StartLine: proseStart,
			})
		}
		prose = nil
	}

	for i := 0; i < len(lines); i++ {
		indent, rest := splitIndent(lines[i])
		if !strings.HasPrefix(rest, "```") {
			if prose == nil {
				proseStart = i + 1
			}
			prose = append(prose, lines[i])
			continue
		}

		flushProse()

		block := Block{Kind: BlockCode, StartLine: i + 1}
		block.Tag, block.RawOptions = parseChunkHeader(strings.TrimSpace(rest[3:]))
		block.Language = strings.ToLower(block.Tag)
		block.Options = parseChunkOptions(block.RawOptions)

		end := findFenceClose(lines, i+1, indent)
		if end < 0 {
			block.Text = trimCode(strings.Join(lines[i+1:], "\n"))
			block.Unterminated = true
			src.Blocks = append(src.Blocks, block)
			src.Warnings = append(src.Warnings,
				fmt.Sprintf("unterminated fence opened at line %d", i+1))
			break
		}

		block.Text = trimCode(strings.Join(lines[i+1:end], "\n"))
		src.Blocks = append(src.Blocks, block)
		i = end
	}

	flushProse()
	return src
}

// findFenceClose returns the index of the closing fence line for a fence
// opened with the given indent, or -1 if the file ends first. A close is a
// line holding exactly the indent followed by ``` and optional trailing
// whitespace.
func findFenceClose(lines []string, from int, indent string) int {
	for j := from; j < len(lines); j++ {
		if !strings.HasPrefix(lines[j], indent) {
			continue
		}
		rest := strings.TrimRight(lines[j][len(indent):], " \t")
		if rest == "```" {
			return j
		}
	}
	return -1
}

// parseChunkHeader splits a fence header into the language tag and the
// verbatim option string. Both the Quarto/knitr brace form ({r label,
// echo=FALSE}) and the bare form (python) are recognized.
func parseChunkHeader(header string) (tag, rawOptions string) {
	if header == "" {
		return "", ""
	}

	// Both the knitr brace form and a bare info string carry the language
	// first; anything after it is the verbatim option string.
	if strings.HasPrefix(header, "{") {
		header = strings.TrimPrefix(header, "{")
		header = strings.TrimSuffix(strings.TrimSpace(header), "}")
		header = strings.TrimSpace(header)
	}

	cut := len(header)
	for idx, r := range header {
		if r == ',' || r == ' ' || r == '\t' {
			cut = idx
			break
		}
	}
	tag = header[:cut]
	rawOptions = strings.TrimSpace(strings.TrimPrefix(header[cut:], ","))
	return tag, rawOptions
}

// parseChunkOptions splits a verbatim option string on commas into key/value
// pairs. Parts without "=" become keys with empty values (chunk labels,
// bare flags). Nothing is validated; unknown options pass through.
func parseChunkOptions(raw string) []ChunkOption {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var opts []ChunkOption
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if k, v, ok := strings.Cut(part, "="); ok {
			opts = append(opts, ChunkOption{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
		} else {
			opts = append(opts, ChunkOption{Key: part})
		}
	}
	return opts
}

// extractFrontMatter strips a leading YAML header delimited by --- lines and
// records its title. A header that fails to decode is left in place as prose.
func extractFrontMatter(src *Source, lines []string) []string {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return lines
	}

	end := -1
	for j := 1; j < len(lines); j++ {
		t := strings.TrimRight(lines[j], " \t")
		if t == "---" || t == "..." {
			end = j
			break
		}
	}
	if end < 0 {
		return lines
	}

	meta, err := decodeFrontMatter(strings.Join(lines[1:end], "\n"))
	if err != nil {
		src.Warnings = append(src.Warnings, fmt.Sprintf("front matter: %v", err))
		return lines
	}
	src.Meta = meta
	return lines[end+1:]
}

// stripLayoutBlocks removes Quarto layout divs (::: {layout-...} through the
// next :::) from prose. Fenced code is left untouched.
func stripLayoutBlocks(lines []string) []string {
	var out []string
	inFence := false
	inLayout := false
	for _, line := range lines {
		_, rest := splitIndent(line)
		if strings.HasPrefix(rest, "```") {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		t := strings.TrimSpace(rest)
		if inLayout {
			if t == ":::" {
				inLayout = false
			}
			continue
		}
		if strings.HasPrefix(t, ":::") && strings.Contains(t, "{layout") {
			inLayout = true
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitIndent separates a line's leading spaces and tabs from the rest.
func splitIndent(line string) (indent, rest string) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i], line[i:]
}

// trimCode drops trailing whitespace from a code body, matching how the
// tutorial chunks are written (no significant trailing blank lines).
func trimCode(body string) string {
	return strings.TrimRight(body, " \t\n")
}
