package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/initializ/scriptgrant/types"
	"github.com/initializ/scriptgrant/validate"
)

var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate scriptgrant.yaml",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfgPath, err := absConfigPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	result := &validate.ValidationResult{}

	schemaErrs, err := validate.ValidateConfigSchema(data)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for _, e := range schemaErrs {
		result.Errors = append(result.Errors, fmt.Sprintf("schema: %s", e))
	}

	cfg, err := types.ParseConfig(data)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		cr := validate.ValidateConfig(cfg)
		result.Errors = append(result.Errors, cr.Errors...)
		result.Warnings = append(result.Warnings, cr.Warnings...)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", e)
	}

	if strict && len(result.Warnings) > 0 {
		return fmt.Errorf("validation failed: %d warning(s) treated as errors in strict mode", len(result.Warnings))
	}

	if !result.IsValid() {
		return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
	}

	fmt.Println("Validation passed.")
	return nil
}
