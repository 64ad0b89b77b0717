package store

import "github.com/halcyonhq/halcyon/models"

// HistoryStore persists the scoring engine's observation history and its
// derived optimal-times cache as a single blob. Load returns an empty
// history when nothing has been stored yet; implementations must never
// fail hard on missing data.
type HistoryStore interface {
	// Load reads the full history. A missing or empty backing store yields
	// an initialized empty history and no error.
	Load() (models.History, error)

	// Save replaces the stored history wholesale.
	Save(history models.History) error

	// Close releases any resources held by the store, such as file locks
	// or database connections.
	Close() error
}

// TaskStore defines the interface for pending-task persistence.
type TaskStore interface {
	// Initialize configures the store with backend-specific settings such
	// as file path and data format. It must be called before any other
	// store operation.
	Initialize(config map[string]string) error

	// CreateTask adds a new task to the store and returns it with
	// store-generated fields (ID, timestamps) populated.
	CreateTask(task models.Task) (models.Task, error)

	// GetTask retrieves a task by its unique identifier.
	GetTask(id string) (models.Task, error)

	// ListTasks retrieves tasks, optionally filtered. A nil filter returns
	// every task.
	ListTasks(filterFn func(models.Task) bool) ([]models.Task, error)

	// MarkTaskDone stamps a task's CompletedAt and returns the updated task.
	MarkTaskDone(id string) (models.Task, error)

	// DeleteTask removes a task from the store by its unique identifier.
	DeleteTask(id string) error

	// Close releases any resources held by the store.
	Close() error
}
