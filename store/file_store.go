package store

import (
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/halcyonhq/halcyon/models"
)

const defaultTaskFile = "tasks.json"

// FileTaskStore implements the TaskStore interface using a file backend.
// It supports JSON, YAML, and TOML formats and uses file-level locking so
// concurrent halcyon processes cannot tear the data file.
type FileTaskStore struct {
	filePath string
	tasks    map[string]models.Task
	flk      *flock.Flock
	format   string
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{
		tasks: make(map[string]models.Task),
	}
}

// Initialize configures the FileTaskStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'tasks.json' in the current working directory.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	s.filePath = config[dataFileKey]
	if s.filePath == "" {
		s.filePath = defaultTaskFile
	}

	format, err := normalizeFormat(config[dataFileFormatKey])
	if err != nil {
		return err
	}
	s.format = format

	if err := ensureDataFile(s.filePath); err != nil {
		return err
	}

	s.flk = flock.New(s.filePath)
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.tasks = make(map[string]models.Task)
	return s.loadLocked()
}

// loadLocked reads tasks from the file. The caller must hold the file lock.
func (s *FileTaskStore) loadLocked() error {
	data, err := readDataFile(s.filePath)
	if err != nil {
		return err
	}
	s.tasks = make(map[string]models.Task)
	if len(data) == 0 {
		return nil
	}

	var list models.TaskList
	if err := unmarshalAs(s.format, data, &list); err != nil {
		return fmt.Errorf("load %s: %w", s.filePath, err)
	}
	for _, task := range list.Tasks {
		s.tasks[task.ID] = task
	}
	return nil
}

// saveLocked writes tasks to the file. The caller must hold the file lock.
func (s *FileTaskStore) saveLocked() error {
	list := models.TaskList{
		Tasks:      make([]models.Task, 0, len(s.tasks)),
		TotalCount: len(s.tasks),
	}
	for _, task := range s.tasks {
		list.Tasks = append(list.Tasks, task)
	}

	data, err := marshalAs(s.format, list)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}
	return writeDataFile(s.filePath, data)
}

// CreateTask adds a new task to the store, generating an ID when absent.
func (s *FileTaskStore) CreateTask(task models.Task) (models.Task, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("could not lock file for create: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadLocked(); err != nil {
		return models.Task{}, fmt.Errorf("failed to reload tasks before create: %w", err)
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	} else if _, exists := s.tasks[task.ID]; exists {
		return models.Task{}, fmt.Errorf("task with ID '%s' already exists", task.ID)
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}

	s.tasks[task.ID] = task

	if err := s.saveLocked(); err != nil {
		_ = s.loadLocked() // best-effort rollback of the in-memory map
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by its unique identifier.
func (s *FileTaskStore) GetTask(id string) (models.Task, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("failed to acquire lock for GetTask: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadLocked(); err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks for GetTask: %w", err)
	}

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task with ID %s not found", id)
	}
	return task, nil
}

// ListTasks retrieves tasks, optionally filtered.
func (s *FileTaskStore) ListTasks(filterFn func(models.Task) bool) ([]models.Task, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for ListTasks: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadLocked(); err != nil {
		return nil, fmt.Errorf("failed to load tasks for ListTasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filterFn == nil || filterFn(task) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// MarkTaskDone stamps the task's completion time.
func (s *FileTaskStore) MarkTaskDone(id string) (models.Task, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("failed to acquire write lock for MarkTaskDone: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadLocked(); err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks before marking done: %w", err)
	}

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task with ID %s not found to mark as done", id)
	}
	original := task

	now := time.Now().UTC()
	task.CompletedAt = &now
	task.UpdatedAt = now
	s.tasks[id] = task

	if err := s.saveLocked(); err != nil {
		s.tasks[id] = original
		return models.Task{}, fmt.Errorf("failed to save task %s after marking done: %w", id, err)
	}
	return task, nil
}

// DeleteTask removes a task from the store by its unique identifier.
func (s *FileTaskStore) DeleteTask(id string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadLocked(); err != nil {
		return fmt.Errorf("failed to reload tasks before delete: %w", err)
	}

	if _, exists := s.tasks[id]; !exists {
		return fmt.Errorf("task with ID '%s' not found", id)
	}
	delete(s.tasks, id)

	if err := s.saveLocked(); err != nil {
		_ = s.loadLocked()
		return fmt.Errorf("failed to save after deleting task: %w", err)
	}
	return nil
}

// Close releases the file lock held by the store.
// flock.Unlock() is idempotent and can be called even if the lock is not
// currently held by this process.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
