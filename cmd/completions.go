package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/runtime"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

// completionRuntime opens a runtime for shell completion. The hidden
// completion command skips PersistentPreRunE, so ctx is usually nil here.
func completionRuntime() (*runtime.Context, func(), bool) {
	if ctx != nil {
		return ctx, func() {}, true
	}
	opts := runtime.DefaultOptions()
	opts.Format = output.FormatPlain
	rt, err := runtime.New(opts)
	if err != nil {
		return nil, nil, false
	}
	return rt, func() { _ = rt.Close() }, true
}

// completeTaskIDs completes task IDs with their titles as descriptions.
// Pending tasks come first.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	rt, done, ok := completionRuntime()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer done()

	tasks, err := rt.TaskRepo.GetAll()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tasks = schedule.Sort(tasks, schedule.SortByDate)

	var pending, completed []string
	for _, t := range tasks {
		if !strings.HasPrefix(t.ID, toComplete) {
			continue
		}
		entry := t.ID + "\t" + t.Title + " (" + t.Date + ")"
		if t.IsCompleted() {
			completed = append(completed, entry)
		} else {
			pending = append(pending, entry)
		}
	}
	return append(pending, completed...), cobra.ShellCompDirectiveNoFileComp
}

// completePriorities completes priority names.
func completePriorities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, p := range model.Priorities {
		if strings.HasPrefix(strings.ToLower(string(p)), strings.ToLower(toComplete)) {
			out = append(out, string(p))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeStatuses completes task statuses.
func completeStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{string(model.StatusPending), string(model.StatusCompleted)}, toComplete),
		cobra.ShellCompDirectiveNoFileComp
}

// completeSortOrders completes --sort values.
func completeSortOrders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{
		string(schedule.SortByDate) + "\tdate, then time",
		string(schedule.SortByPriority) + "\tHigh first",
		string(schedule.SortByTitle) + "\talphabetical",
	}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDates suggests common relative dates.
func completeDates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{
		"today",
		"tomorrow",
		"yesterday",
		"monday",
		"tuesday",
		"wednesday",
		"thursday",
		"friday",
		"saturday",
		"sunday",
		"next week",
	}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeLanguages completes language codes.
func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix([]string{"en\tEnglish", "ru\tРусский"}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		name, _, _ := strings.Cut(v, "\t")
		if strings.HasPrefix(name, prefix) {
			out = append(out, v)
		}
	}
	return out
}
