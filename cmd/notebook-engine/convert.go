// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notebook-engine/internal/convert"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-dir>",
	Short: "Convert tutorial documents into notebooks",
	Long: `Convert walks a directory of .qmd/.Rmd tutorial documents and writes one
notebook per document to a mirrored tree under --output. Prose becomes
markdown cells and fenced code chunks become code cells, in document order.

With --add-language-magic, code chunks declared in a language other than the
kernel's native one get a %%<lang> first line. With --colab-setup, the rpy2
install and Drive mount preamble is inserted before the first such cell.

One bad file never aborts the batch; the exit code is non-zero only when the
input tree is unusable or every discovered file failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := convert.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.AllFailed() {
		return fmt.Errorf("all %d discovered file(s) failed conversion", result.Discovered)
	}
	return nil
}

// convertConfig builds the job configuration from flags, with kernel
// defaults taken from the config file.
func convertConfig(cmd *cobra.Command, inputDir string) (types.ConvertConfig, error) {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return types.ConvertConfig{}, fmt.Errorf("--output directory required")
	}

	cfg := types.ConvertConfig{
		InputDir:  inputDir,
		OutputDir: output,
		Kernel:    kernelFromConfig(),
	}
	cfg.Recursive, _ = cmd.Flags().GetBool("recursive")
	cfg.AddLanguageMagic, _ = cmd.Flags().GetBool("add-language-magic")
	cfg.ColabSetup, _ = cmd.Flags().GetBool("colab-setup")
	cfg.StripLayoutBlocks, _ = cmd.Flags().GetBool("strip-layout")
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")

	return cfg, nil
}

// kernelFromConfig reads the kernel spec from the config file, falling back
// to the Colab Python runtime.
func kernelFromConfig() types.KernelSpec {
	kernel := types.DefaultKernel()
	if v := viper.GetString("kernel.display_name"); v != "" {
		kernel.DisplayName = v
	}
	if v := viper.GetString("kernel.language"); v != "" {
		kernel.Language = v
	}
	if v := viper.GetString("kernel.name"); v != "" {
		kernel.Name = v
	}
	return kernel
}

func init() {
	convertCmd.Flags().String("output", "", "output directory for notebooks (required)")
	convertCmd.Flags().Bool("recursive", false, "descend into subdirectories, mirroring the layout")
	convertCmd.Flags().Bool("add-language-magic", false, "prepend %%<lang> to foreign-language code cells")
	convertCmd.Flags().Bool("colab-setup", false, "insert the rpy2 install and Drive mount preamble")
	convertCmd.Flags().Bool("strip-layout", false, "remove Quarto layout blocks from prose")
	convertCmd.Flags().Bool("verbose", false, "print one line per file")

	rootCmd.AddCommand(convertCmd)
}
