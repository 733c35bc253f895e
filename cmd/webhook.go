package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/notify"
)

// Webhook command flags.
var (
	webhookAddFlagType     string
	webhookAddFlagTemplate string
	webhookTestFlagAll     bool
)

// webhookCmd represents the webhook command.
var webhookCmd = &cobra.Command{
	Use:     "webhook [command]",
	Aliases: []string{"wh", "hook"},
	Short:   "Configure reminder webhooks",
	Long: `Configure Discord, Slack, Teams or custom webhooks that receive task
reminders and the daily agenda from 'tasksync watch'.

Webhooks are stored under reminders.webhooks in the config file.

Examples:
  tasksync webhook add team https://hooks.slack.com/services/...
  tasksync webhook list
  tasksync webhook test team
  tasksync webhook disable team
  tasksync webhook remove team`,
	Args: cobra.NoArgs,
	RunE: runWebhookList,
}

// webhookAddCmd adds a new webhook.
var webhookAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a webhook",
	Long: `Add a webhook for receiving reminders.

The webhook type is detected from the URL:
  - Discord: discord.com/api/webhooks/...
  - Slack:   hooks.slack.com/services/...
  - Teams:   webhook.office.com/...
  - Generic: any other URL

Generic webhooks receive the notification as JSON, or the output of
--template, a Go text/template with .Title, .Message, .TaskID, .Fields
and .Timestamp.

Examples:
  tasksync webhook add alerts https://discord.com/api/webhooks/123/abc
  tasksync webhook add ci https://example.com/hook --template '{"text":"{{.Title}}"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runWebhookAdd,
}

// webhookListCmd lists all webhooks.
var webhookListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured webhooks",
	Args:    cobra.NoArgs,
	RunE:    runWebhookList,
}

// webhookTestCmd tests a webhook.
var webhookTestCmd = &cobra.Command{
	Use:   "test [NAME]",
	Short: "Send a test notification",
	Long: `Send a test notification to verify a webhook.

Examples:
  tasksync webhook test team
  tasksync webhook test --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWebhookTest,
}

// webhookRemoveCmd removes a webhook.
var webhookRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a webhook",
	Args:    cobra.ExactArgs(1),
	RunE:    runWebhookRemove,
}

// webhookEnableCmd enables a webhook.
var webhookEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWebhookDisabled(args[0], false)
	},
}

// webhookDisableCmd disables a webhook.
var webhookDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWebhookDisabled(args[0], true)
	},
}

func init() {
	webhookAddCmd.Flags().StringVarP(&webhookAddFlagType, "type", "t", "",
		"Webhook type: discord, slack, teams, generic (detected from the URL if not set)")
	webhookAddCmd.Flags().StringVar(&webhookAddFlagTemplate, "template", "",
		"Payload template for generic webhooks")
	_ = webhookAddCmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		model.ValidWebhookTypes(), cobra.ShellCompDirectiveNoFileComp))

	webhookTestCmd.Flags().BoolVarP(&webhookTestFlagAll, "all", "a", false,
		"Test all enabled webhooks")

	webhookTestCmd.ValidArgsFunction = completeWebhookNames
	webhookRemoveCmd.ValidArgsFunction = completeWebhookNames
	webhookEnableCmd.ValidArgsFunction = completeWebhookNames
	webhookDisableCmd.ValidArgsFunction = completeWebhookNames

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookEnableCmd)
	webhookCmd.AddCommand(webhookDisableCmd)

	rootCmd.AddCommand(webhookCmd)
}

// completeWebhookNames completes configured webhook names.
func completeWebhookNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(config.Global.Reminders.Webhooks))
	for _, w := range config.Global.Reminders.Webhooks {
		names = append(names, w.Name)
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// editWebhooks loads the config file, applies edit to its webhooks, and
// writes it back. The effective configuration is updated to match.
func editWebhooks(edit func([]model.Webhook) ([]model.Webhook, error)) error {
	path := configFilePath()
	file := config.DefaultRuntimeConfig()
	if err := file.LoadFile(path); err != nil {
		return errors.NewSystemErrorWithOp("read config", path, err)
	}

	webhooks, err := edit(slices.Clone(file.Reminders.Webhooks))
	if err != nil {
		return err
	}
	file.Reminders.Webhooks = webhooks

	if err := file.WriteFile(path); err != nil {
		return errors.NewSystemErrorWithOp("write config", path, err)
	}
	ctx.Config.Reminders.Webhooks = webhooks
	return nil
}

func webhookIndex(webhooks []model.Webhook, name string) int {
	return slices.IndexFunc(webhooks, func(w model.Webhook) bool {
		return strings.EqualFold(w.Name, name)
	})
}

func webhookNotFound(name string) error {
	return errors.NewUserErrorWithField("webhook", name,
		fmt.Sprintf("webhook %q not found", name),
		"Use 'tasksync webhook list' to see configured webhooks.")
}

func runWebhookAdd(cmd *cobra.Command, args []string) error {
	name, rawURL := args[0], strings.TrimSpace(args[1])

	webhook := model.Webhook{
		Name:     name,
		Type:     strings.ToLower(webhookAddFlagType),
		URL:      rawURL,
		Template: webhookAddFlagTemplate,
	}
	if err := webhook.Validate(); err != nil {
		return err
	}
	if webhook.Type == "" {
		webhook.Type = model.DetectWebhookType(rawURL)
	}
	webhookType := webhook.Type

	if webhook.Template != "" {
		// Reject templates that do not render.
		if _, err := notify.NewGenericFormatter(webhook.Template).Format(
			model.NewNotification(model.NotifyTest, "", "", ctx.Now())); err != nil {
			return errors.NewUserErrorWithField("template", webhook.Template, "invalid template: "+err.Error(),
				"Templates use Go text/template syntax, e.g. {\"text\":\"{{.Title}}\"}.")
		}
	}

	err := editWebhooks(func(webhooks []model.Webhook) ([]model.Webhook, error) {
		if webhookIndex(webhooks, name) >= 0 {
			return nil, errors.NewUserErrorWithField("webhook", name,
				fmt.Sprintf("webhook %q already exists", name),
				"Remove it first or pick another name.")
		}
		return append(webhooks, webhook), nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintWebhooks([]model.Webhook{webhook})
	}
	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added webhook %s (%s)", name, webhookType))
	cli.Muted("Test it with: tasksync webhook test " + name)
	return nil
}

func runWebhookList(cmd *cobra.Command, args []string) error {
	webhooks := ctx.Config.Reminders.Webhooks
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintWebhooks(webhooks)
	}
	ctx.CLIFormatter().PrintWebhooks(webhooks)
	return nil
}

func runWebhookTest(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config.Reminders
	dispatcher := notify.NewDispatcher(cfg.Webhooks,
		notify.NewHTTPClient(cfg.WebhookTimeout, cfg.WebhookRetries))

	var names []string
	switch {
	case webhookTestFlagAll:
		for _, w := range dispatcher.Enabled() {
			names = append(names, w.Name)
		}
		if len(names) == 0 {
			return errors.NewUserError("no enabled webhooks to test",
				"Add one with 'tasksync webhook add NAME URL'.")
		}
	case len(args) == 1:
		w, ok := cfg.Webhook(args[0])
		if !ok {
			return webhookNotFound(args[0])
		}
		names = []string{w.Name}
	default:
		return errors.NewUserError("webhook name required", "Pass a NAME or use --all.")
	}

	results := make([]notify.DispatchResult, 0, len(names))
	for _, name := range names {
		results = append(results, dispatcher.TestWebhook(cmd.Context(), name, ctx.Now()))
	}

	if ctx.IsJSON() {
		out := make([]map[string]any, len(results))
		for i, r := range results {
			out[i] = map[string]any{
				"webhook":     r.WebhookName,
				"success":     r.Success,
				"status_code": r.StatusCode,
				"attempts":    r.Attempts,
				"duration_ms": r.Duration.Milliseconds(),
				"error":       errorString(r.Error),
			}
		}
		return ctx.Formatter.JSON(out)
	}

	cli := ctx.CLIFormatter()
	failed := 0
	for _, r := range results {
		if r.Success {
			cli.Success(fmt.Sprintf("%s: delivered in %dms", r.WebhookName, r.Duration.Milliseconds()))
			continue
		}
		failed++
		cli.Error(fmt.Sprintf("%s: %v", r.WebhookName, r.Error))
	}
	if failed > 0 {
		return errors.NewUserError(fmt.Sprintf("%d of %d webhooks failed", failed, len(results)),
			"Check the URL with 'tasksync webhook list' and that the service is reachable.")
	}
	return nil
}

func runWebhookRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	err := editWebhooks(func(webhooks []model.Webhook) ([]model.Webhook, error) {
		i := webhookIndex(webhooks, name)
		if i < 0 {
			return nil, webhookNotFound(name)
		}
		return slices.Delete(webhooks, i, i+1), nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage("removed", name)
	}
	ctx.CLIFormatter().Success("Removed webhook " + name)
	return nil
}

func setWebhookDisabled(name string, disabled bool) error {
	err := editWebhooks(func(webhooks []model.Webhook) ([]model.Webhook, error) {
		i := webhookIndex(webhooks, name)
		if i < 0 {
			return nil, webhookNotFound(name)
		}
		webhooks[i].Disabled = disabled
		return webhooks, nil
	})
	if err != nil {
		return err
	}

	state := "enabled"
	if disabled {
		state = "disabled"
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage(state, name)
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Webhook %s %s", name, state))
	return nil
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
