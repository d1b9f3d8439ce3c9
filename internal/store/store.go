package store

import (
	"context"
	"iter"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/selector"
)

// Store defines the persistence interface for ToDo records.
type Store interface {
	// CreateTodo inserts a todo and returns its assigned ID.
	CreateTodo(ctx context.Context, todo model.Todo) (int64, error)

	// ReplaceTodos atomically swaps the whole table for todos and returns
	// the rows whose topic had already been inserted earlier in the batch.
	ReplaceTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error)

	// Todos lazily yields the todos matching sel. Every range over the
	// sequence runs the query again.
	Todos(ctx context.Context, sel selector.Selector) iter.Seq2[model.Todo, error]

	// ListTodos collects Todos into a slice.
	ListTodos(ctx context.Context, sel selector.Selector) ([]model.Todo, error)

	// CountTodos returns the total number of todos.
	CountTodos(ctx context.Context) (int, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
