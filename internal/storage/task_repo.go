package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// TaskRepo provides operations for the task collection.
type TaskRepo struct {
	store BlobStore
	now   func() time.Time
	newID func() string
}

// NewTaskRepo creates a new task repository.
func NewTaskRepo(store BlobStore) *TaskRepo {
	return &TaskRepo{store: store, now: time.Now, newID: newTaskID}
}

// WithClock returns a copy of the repository that reads the time from now.
func (r *TaskRepo) WithClock(now func() time.Time) *TaskRepo {
	c := *r
	c.now = now
	return &c
}

func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GetAll returns every stored task in insertion order. A missing or
// unreadable collection reads as empty.
func (r *TaskRepo) GetAll() ([]*model.Task, error) {
	var stored []*model.Task
	ok, err := readJSON(r.store, model.KeyTasks, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*model.Task{}, nil
	}
	tasks := make([]*model.Task, 0, len(stored))
	for _, t := range stored {
		if t != nil {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *TaskRepo) save(tasks []*model.Task) error {
	return writeJSON(r.store, model.KeyTasks, tasks)
}

// Get returns the task with the given id.
func (r *TaskRepo) Get(id string) (*model.Task, bool, error) {
	tasks, err := r.GetAll()
	if err != nil {
		return nil, false, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, true, nil
		}
	}
	return nil, false, nil
}

// Add appends a new pending task built from input.
func (r *TaskRepo) Add(input model.TaskInput) (*model.Task, error) {
	tasks, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	task := model.NewTask(r.newID(), input, r.now())
	tasks = append(tasks, task)
	if err := r.save(tasks); err != nil {
		return nil, err
	}
	logging.LogOperation("task.add", logging.KeyTaskID, task.ID, logging.KeyCount, len(tasks))
	return task, nil
}

// Update merges patch into the task with the given id and refreshes its
// updatedAt. It reports false, leaving the collection untouched, when no
// task has that id.
func (r *TaskRepo) Update(id string, patch model.TaskPatch) (*model.Task, bool, error) {
	tasks, err := r.GetAll()
	if err != nil {
		return nil, false, err
	}
	for _, t := range tasks {
		if t.ID != id {
			continue
		}
		patch.Apply(t)
		t.UpdatedAt = model.FormatTimestamp(r.now())
		if t.UpdatedAt < t.CreatedAt {
			t.UpdatedAt = t.CreatedAt
		}
		if err := r.save(tasks); err != nil {
			return nil, false, err
		}
		logging.LogOperation("task.update", logging.KeyTaskID, id)
		return t, true, nil
	}
	return nil, false, nil
}

// Delete removes the task with the given id. It reports false when no task
// has that id.
func (r *TaskRepo) Delete(id string) (bool, error) {
	tasks, err := r.GetAll()
	if err != nil {
		return false, err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	if err := r.save(kept); err != nil {
		return false, err
	}
	logging.LogOperation("task.delete", logging.KeyTaskID, id)
	return true, nil
}

// ToggleStatus flips a task between pending and completed.
func (r *TaskRepo) ToggleStatus(id string) (*model.Task, bool, error) {
	task, ok, err := r.Get(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	next := task.Status.Toggled()
	return r.Update(id, model.TaskPatch{Status: &next})
}

// GetToday returns the tasks dated today in local time.
func (r *TaskRepo) GetToday() ([]*model.Task, error) {
	today := model.DateString(r.now())
	return r.filter(func(t *model.Task) bool { return t.Date == today })
}

// GetWeek returns the tasks dated within the Sunday-first week containing today.
func (r *TaskRepo) GetWeek() ([]*model.Task, error) {
	start, end := model.WeekRange(r.now())
	return r.filter(func(t *model.Task) bool { return model.InDateRange(t.Date, start, end) })
}

// GetStats recomputes the summary counts.
func (r *TaskRepo) GetStats() (model.Stats, error) {
	all, err := r.GetAll()
	if err != nil {
		return model.Stats{}, err
	}
	today, err := r.GetToday()
	if err != nil {
		return model.Stats{}, err
	}
	week, err := r.GetWeek()
	if err != nil {
		return model.Stats{}, err
	}
	return model.ComputeStats(all, today, week), nil
}

func (r *TaskRepo) filter(keep func(*model.Task) bool) ([]*model.Task, error) {
	tasks, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
