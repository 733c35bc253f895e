package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/parser"
	"github.com/manav03panchal/tasksync/internal/schedule"
	"github.com/manav03panchal/tasksync/internal/validate"
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	Long: `Create, list, edit and complete tasks.

Task IDs may be shortened to any unique prefix or suffix, such as the
8 characters shown by 'tasksync task list'.

Examples:
  tasksync task add "Write report" --time 14:30 --date tomorrow --priority High
  tasksync task list --search report --sort priority
  tasksync task toggle 3f9a1c2e
  tasksync task edit 3f9a1c2e --time "4pm"
  tasksync task delete 3f9a1c2e`,
	Args: cobra.NoArgs,
	RunE: runTaskList,
}

// Task subcommand flags.
var (
	taskFlagDescription string
	taskFlagTime        string
	taskFlagDate        string
	taskFlagPriority    string

	taskEditFlagTitle       string
	taskEditFlagDescription string
	taskEditFlagTime        string
	taskEditFlagDate        string
	taskEditFlagPriority    string

	taskListFlagSearch   string
	taskListFlagPriority string
	taskListFlagStatus   string
	taskListFlagSort     string
)

// taskAddCmd creates a task.
var taskAddCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"new", "create"},
	Short:   "Create a task",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTaskAdd,
}

// taskListCmd lists tasks.
var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

// taskShowCmd shows one task.
var taskShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show task details",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runTaskShow,
}

// taskEditCmd updates a task.
var taskEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runTaskEdit,
}

// taskDeleteCmd deletes a task.
var taskDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runTaskDelete,
}

// taskToggleCmd flips a task between pending and completed.
var taskToggleCmd = &cobra.Command{
	Use:               "toggle ID",
	Aliases:           []string{"done"},
	Short:             "Mark a task completed, or return it to the list",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runTaskToggle,
}

func init() {
	// Add flags
	taskAddCmd.Flags().StringVarP(&taskFlagDescription, "description", "d", "", "Task description")
	taskAddCmd.Flags().StringVarP(&taskFlagTime, "time", "t", "", "Time of day (14:30, 2:30 PM, 9am)")
	taskAddCmd.Flags().StringVar(&taskFlagDate, "date", "today", "Date (2026-10-17, tomorrow, next friday)")
	taskAddCmd.Flags().StringVarP(&taskFlagPriority, "priority", "p", string(model.PriorityMedium), "Priority: Low, Medium, High")
	_ = taskAddCmd.MarkFlagRequired("time")
	_ = taskAddCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = taskAddCmd.RegisterFlagCompletionFunc("date", completeDates)

	// Edit flags
	taskEditCmd.Flags().StringVar(&taskEditFlagTitle, "title", "", "New title")
	taskEditCmd.Flags().StringVarP(&taskEditFlagDescription, "description", "d", "", "New description")
	taskEditCmd.Flags().StringVarP(&taskEditFlagTime, "time", "t", "", "New time of day")
	taskEditCmd.Flags().StringVar(&taskEditFlagDate, "date", "", "New date")
	taskEditCmd.Flags().StringVarP(&taskEditFlagPriority, "priority", "p", "", "New priority")
	_ = taskEditCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = taskEditCmd.RegisterFlagCompletionFunc("date", completeDates)

	// List flags, shared with the bare task command
	for _, c := range []*cobra.Command{taskCmd, taskListCmd} {
		c.Flags().StringVarP(&taskListFlagSearch, "search", "s", "", "Search title and description")
		c.Flags().StringVarP(&taskListFlagPriority, "priority", "p", "", "Filter by priority")
		c.Flags().StringVar(&taskListFlagStatus, "status", "", "Filter by status: pending, completed")
		c.Flags().StringVar(&taskListFlagSort, "sort", string(schedule.SortByDate), "Sort by: date, priority, title")
		_ = c.RegisterFlagCompletionFunc("priority", completePriorities)
		_ = c.RegisterFlagCompletionFunc("status", completeStatuses)
		_ = c.RegisterFlagCompletionFunc("sort", completeSortOrders)
	}

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskToggleCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	title := validate.SanitizeTitle(strings.Join(args, " "))
	if err := validate.Title(title); err != nil {
		return err
	}
	desc := validate.SanitizeDescription(taskFlagDescription)
	if err := validate.Description(desc); err != nil {
		return err
	}
	clock, err := parser.ParseClock(taskFlagTime)
	if err != nil {
		return err
	}
	date, err := parser.ParseDate(taskFlagDate, ctx.Now())
	if err != nil {
		return err
	}
	priority, err := validate.Priority(taskFlagPriority)
	if err != nil {
		return err
	}

	task, err := ctx.TaskRepo.Add(model.TaskInput{
		Title:       title,
		Description: desc,
		Time:        clock,
		Date:        date,
		Priority:    priority,
	})
	if err != nil {
		return errors.Wrap(err, "add task")
	}

	ctx.Toasts.Success(ctx.T("tasks.taskCreated"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("created", task)
	}
	ctx.CLIFormatter().PrintTask(task)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	query := schedule.Query{Search: strings.TrimSpace(taskListFlagSearch)}
	if taskListFlagPriority != "" {
		p, err := validate.Priority(taskListFlagPriority)
		if err != nil {
			return err
		}
		query.Priority = p
	}
	if taskListFlagStatus != "" {
		s, err := validate.Status(taskListFlagStatus)
		if err != nil {
			return err
		}
		query.Status = s
	}

	tasks, err := ctx.TaskRepo.GetAll()
	if err != nil {
		return err
	}
	tasks = schedule.Sort(schedule.Filter(tasks, query), schedule.ParseSortBy(taskListFlagSort))
	ctx.Debugf("listed tasks", "count", len(tasks), "sort", taskListFlagSort)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTasks(tasks)
	}
	ctx.CLIFormatter().PrintTaskList(ctx.T("tasks.tasks"), tasks, ctx.T("tasks.noTasksFound"))
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	task, err := resolveTask(args[0])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("ok", task)
	}
	ctx.CLIFormatter().PrintTask(task)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	task, err := resolveTask(args[0])
	if err != nil {
		return err
	}

	patch, err := buildTaskPatch(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errors.NewUserError("Nothing to change",
			"Pass at least one of --title, --description, --time, --date or --priority.")
	}

	updated, ok, err := ctx.TaskRepo.Update(task.ID, patch)
	if err != nil {
		return errors.Wrap(err, "update task")
	}
	if !ok {
		return errors.UserErrorFor(errors.ErrTaskNotFound, "id", task.ID)
	}

	ctx.Toasts.Success(ctx.T("tasks.taskUpdated"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("updated", updated)
	}
	ctx.CLIFormatter().PrintTask(updated)
	return nil
}

func buildTaskPatch(cmd *cobra.Command) (model.TaskPatch, error) {
	var patch model.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title := validate.SanitizeTitle(taskEditFlagTitle)
		if err := validate.Title(title); err != nil {
			return patch, err
		}
		patch.Title = &title
	}
	if flags.Changed("description") {
		desc := validate.SanitizeDescription(taskEditFlagDescription)
		if err := validate.Description(desc); err != nil {
			return patch, err
		}
		patch.Description = &desc
	}
	if flags.Changed("time") {
		clock, err := parser.ParseClock(taskEditFlagTime)
		if err != nil {
			return patch, err
		}
		patch.Time = &clock
	}
	if flags.Changed("date") {
		date, err := parser.ParseDate(taskEditFlagDate, ctx.Now())
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	if flags.Changed("priority") {
		p, err := validate.Priority(taskEditFlagPriority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	return patch, nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	task, err := resolveTask(args[0])
	if err != nil {
		return err
	}

	ok, err := ctx.TaskRepo.Delete(task.ID)
	if err != nil {
		return errors.Wrap(err, "delete task")
	}
	if !ok {
		return errors.UserErrorFor(errors.ErrTaskNotFound, "id", task.ID)
	}

	ctx.Toasts.Success(ctx.T("tasks.taskDeleted"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("deleted", task)
	}
	return nil
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	task, err := resolveTask(args[0])
	if err != nil {
		return err
	}

	updated, ok, err := ctx.TaskRepo.ToggleStatus(task.ID)
	if err != nil {
		return errors.Wrap(err, "toggle task")
	}
	if !ok {
		return errors.UserErrorFor(errors.ErrTaskNotFound, "id", task.ID)
	}

	if updated.IsCompleted() {
		ctx.Toasts.Success(ctx.T("tasks.taskCompleted"))
	} else {
		ctx.Toasts.Info(ctx.T("tasks.taskReturned"))
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask(string(updated.Status), updated)
	}
	return nil
}

// resolveTask finds a task by full ID or by a unique prefix or suffix.
func resolveTask(ref string) (*model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.UserErrorFor(errors.ErrTaskNotFound, "id", ref)
	}

	tasks, err := ctx.TaskRepo.GetAll()
	if err != nil {
		return nil, err
	}

	var matches []*model.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) || strings.HasSuffix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.UserErrorFor(errors.ErrTaskNotFound, "id", ref)
	case 1:
		return matches[0], nil
	}
	return nil, errors.NewUserErrorWithField("id", ref,
		fmt.Sprintf("%d tasks match %q", len(matches), ref),
		"Use more characters of the task ID.")
}
