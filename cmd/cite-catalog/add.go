package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/cite-catalog/internal/viewmodel"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a citation",
	Long: `Add creates a citation from the field flags. --title is required; --year
accepts any text and keeps its leading digits ("2020a" is 2020).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController(cfg, &printNotifier{w: cmd.ErrOrStderr()}, logger)
		ctrl.OpenAdd()

		form := ctrl.Screen().Edit.Form
		applyFieldFlags(cmd.Flags(), &form)

		created, err := ctrl.Save(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	},
}

// fieldFlags maps flag names to form fields.
var fieldFlags = []struct {
	name  string
	usage string
	field func(*viewmodel.Form) *string
}{
	{"title", "citation title", func(f *viewmodel.Form) *string { return &f.Title }},
	{"authors", "comma-separated authors", func(f *viewmodel.Form) *string { return &f.Authors }},
	{"journal", "journal name", func(f *viewmodel.Form) *string { return &f.Journal }},
	{"year", "publication year", func(f *viewmodel.Form) *string { return &f.Year }},
	{"volume", "volume", func(f *viewmodel.Form) *string { return &f.Volume }},
	{"issue", "issue", func(f *viewmodel.Form) *string { return &f.Issue }},
	{"pages", "page range", func(f *viewmodel.Form) *string { return &f.Pages }},
	{"doi", "DOI without resolver prefix", func(f *viewmodel.Form) *string { return &f.DOI }},
	{"url", "link to the publication", func(f *viewmodel.Form) *string { return &f.URL }},
	{"keywords", "comma-separated keywords", func(f *viewmodel.Form) *string { return &f.Keywords }},
	{"abstract", "abstract text", func(f *viewmodel.Form) *string { return &f.Abstract }},
}

func addFieldFlags(fs *pflag.FlagSet) {
	for _, f := range fieldFlags {
		fs.String(f.name, "", f.usage)
	}
}

// applyFieldFlags copies explicitly set flags into form, leaving the
// other fields as they were.
func applyFieldFlags(fs *pflag.FlagSet, form *viewmodel.Form) {
	for _, f := range fieldFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, _ := fs.GetString(f.name)
		*f.field(form) = v
	}
}

func init() {
	addFieldFlags(addCmd.Flags())

	rootCmd.AddCommand(addCmd)
}
