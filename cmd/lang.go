package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/i18n"
)

// langCmd shows or sets the interface language.
var langCmd = &cobra.Command{
	Use:     "lang [en|ru]",
	Aliases: []string{"language"},
	Short:   "Show or set the interface language",
	Long: `Show the interface language, or switch it. Supported: en, ru.

Examples:
  tasksync lang
  tasksync lang ru`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLanguages,
	RunE:              runLang,
}

func init() {
	rootCmd.AddCommand(langCmd)
}

func runLang(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintMessage("ok", string(ctx.Lang))
		}
		ctx.CLIFormatter().Printf("%s: %s (%s)\n", ctx.T("settings.language"), ctx.Lang, languageName(ctx.Lang))
		return nil
	}

	lang, ok := i18n.ParseLanguage(args[0])
	if !ok {
		return errors.UserErrorFor(errors.ErrInvalidLanguage, "language", args[0])
	}
	if err := ctx.LanguageRepo.Set(lang); err != nil {
		return errors.Wrap(err, "save language")
	}
	ctx.Lang = lang

	ctx.Toasts.Success(ctx.T("settings.languageSaved"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage("updated", string(lang))
	}
	return nil
}

func languageName(lang i18n.Language) string {
	if lang == i18n.Russian {
		return i18n.T(lang, "settings.russian")
	}
	return i18n.T(lang, "settings.english")
}
