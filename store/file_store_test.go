package store

import (
	"path/filepath"
	"testing"

	"github.com/halcyonhq/halcyon/models"
)

func setupTestStore(t *testing.T) *FileTaskStore {
	t.Helper()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.json")

	store := NewFileTaskStore()
	config := map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": "json",
	}

	err := store.Initialize(config)
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	return store
}

func TestFileTaskStore_BasicOperations(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	task := models.Task{
		Title:    "Test Task",
		Type:     models.TypeCreative,
		Priority: models.PriorityMedium,
	}

	created, err := store.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if created.ID == "" {
		t.Error("Created task should have an ID")
	}
	if created.Title != task.Title {
		t.Errorf("Title mismatch: got %q, want %q", created.Title, task.Title)
	}

	retrieved, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if retrieved.ID != created.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, created.ID)
	}
	if retrieved.Type != models.TypeCreative {
		t.Errorf("Type mismatch: got %q, want %q", retrieved.Type, models.TypeCreative)
	}

	tasks, err := store.ListTasks(nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Expected 1 task, got %d", len(tasks))
	}

	done, err := store.MarkTaskDone(created.ID)
	if err != nil {
		t.Fatalf("MarkTaskDone failed: %v", err)
	}
	if done.CompletedAt == nil {
		t.Error("CompletedAt should be set when task is marked done")
	}

	err = store.DeleteTask(done.ID)
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	_, err = store.GetTask(done.ID)
	if err == nil {
		t.Error("Expected error when getting deleted task")
	}
}

func TestFileTaskStore_RejectsInvalidTask(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	_, err := store.CreateTask(models.Task{Title: "", Priority: models.PriorityHigh})
	if err == nil {
		t.Error("Expected validation error for empty title")
	}

	_, err = store.CreateTask(models.Task{Title: "x", Priority: "urgent"})
	if err == nil {
		t.Error("Expected validation error for unknown priority")
	}
}

func TestFileTaskStore_Filter(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	tasks := []models.Task{
		{Title: "Draft blog post", Type: models.TypeCreative, Priority: models.PriorityHigh},
		{Title: "File expenses", Type: models.TypeRoutine, Priority: models.PriorityMedium},
		{Title: "Evening run", Type: models.TypePhysical, Priority: models.PriorityLow},
	}
	for _, task := range tasks {
		if _, err := store.CreateTask(task); err != nil {
			t.Fatalf("Failed to create task %s: %v", task.Title, err)
		}
	}

	highOnly := func(task models.Task) bool {
		return task.Priority == models.PriorityHigh
	}
	filtered, err := store.ListTasks(highOnly)
	if err != nil {
		t.Fatalf("ListTasks with filter failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 high priority task, got %d", len(filtered))
	}
	if filtered[0].Title != "Draft blog post" {
		t.Errorf("Wrong task filtered: got %s, want Draft blog post", filtered[0].Title)
	}
}

func TestFileTaskStore_PersistsAcrossReopen(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.json")
	config := map[string]string{"dataFile": filePath, "dataFileFormat": "json"}

	first := NewFileTaskStore()
	if err := first.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	created, err := first.CreateTask(models.Task{Title: "Survives restart", Priority: models.PriorityLow})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewFileTaskStore()
	if err := second.Initialize(config); err != nil {
		t.Fatalf("Failed to reinitialize store: %v", err)
	}
	defer func() { _ = second.Close() }()

	reloaded, err := second.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask after reopen failed: %v", err)
	}
	if reloaded.Title != "Survives restart" {
		t.Errorf("Title mismatch after reopen: got %q", reloaded.Title)
	}
}
