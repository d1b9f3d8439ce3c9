package store

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/selector"
)

const day = 24 * time.Hour

// CreateTodo inserts a new todo and returns the ID assigned by SQLite.
// A zero DueDate defaults to the current time.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) (int64, error) {
	return s.insertTodo(ctx, s.db, todo)
}

// CountTodosByTopic returns how many todos carry the given topic.
// Only tests call it; seeding checks topics inside ReplaceTodos.
func (s *SQLiteStore) CountTodosByTopic(ctx context.Context, topic string) (int, error) {
	return countByTopic(ctx, s.db, topic)
}

// CountTodos returns the total number of todos.
func (s *SQLiteStore) CountTodos(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM todo"); err != nil {
		return 0, fmt.Errorf("counting todos: %w", err)
	}
	return count, nil
}

// ReplaceTodos deletes all todos and inserts the given ones in order, in a
// single transaction. A todo whose topic matches one inserted earlier in the
// same call is still inserted and is also returned in the duplicates slice.
func (s *SQLiteStore) ReplaceTodos(
	ctx context.Context,
	todos []model.Todo,
) ([]model.Todo, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM todo"); err != nil {
		return nil, fmt.Errorf("deleting todos: %w", err)
	}

	var duplicates []model.Todo
	for _, t := range todos {
		n, err := countByTopic(ctx, tx, t.Topic)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			duplicates = append(duplicates, t)
		}
		if _, err := s.insertTodo(ctx, tx, t); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing todos: %w", err)
	}
	return duplicates, nil
}

// Todos returns a lazy sequence of the todos matching sel. The query runs
// each time the sequence is ranged over. Iteration stops after the first
// error is yielded.
func (s *SQLiteStore) Todos(
	ctx context.Context,
	sel selector.Selector,
) iter.Seq2[model.Todo, error] {
	return func(yield func(model.Todo, error) bool) {
		query, args, err := buildTodoQuery(sel, s.now())
		if err != nil {
			yield(model.Todo{}, err)
			return
		}

		rows, err := s.db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(model.Todo{}, fmt.Errorf("querying todos: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			todo, err := scanTodo(rows)
			if !yield(todo, err) || err != nil {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.Todo{}, fmt.Errorf("iterating todos: %w", err))
		}
	}
}

// ListTodos retrieves all todos matching sel.
func (s *SQLiteStore) ListTodos(
	ctx context.Context,
	sel selector.Selector,
) ([]model.Todo, error) {
	var todos []model.Todo
	for todo, err := range s.Todos(ctx, sel) {
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// insertTodo validates and inserts a todo through ex.
func (s *SQLiteStore) insertTodo(
	ctx context.Context,
	ex sqlx.ExecerContext,
	todo model.Todo,
) (int64, error) {
	if strings.TrimSpace(todo.Topic) == "" {
		return 0, fmt.Errorf("todo topic must not be empty")
	}
	if strings.TrimSpace(todo.Description) == "" {
		return 0, fmt.Errorf("todo %q: description must not be empty", todo.Topic)
	}
	if todo.DueDate.IsZero() {
		todo.DueDate = wallClock(s.now())
	}

	result, err := ex.ExecContext(ctx, `
		INSERT INTO todo (topic, done, due_date, description)
		VALUES (?, ?, ?, ?)`,
		todo.Topic, boolToInt(todo.Done), todo.DueDate.UTC(), todo.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("creating todo %q: %w", todo.Topic, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading id of todo %q: %w", todo.Topic, err)
	}
	return id, nil
}

func countByTopic(ctx context.Context, q sqlx.QueryerContext, topic string) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count, "SELECT COUNT(*) FROM todo WHERE topic = ?", topic)
	if err != nil {
		return 0, fmt.Errorf("counting todos with topic %q: %w", topic, err)
	}
	return count, nil
}

// buildTodoQuery translates a selector into SQL. Day-based selectors compare
// calendar days: a date D covers [D, D+1d).
func buildTodoQuery(sel selector.Selector, now time.Time) (string, []interface{}, error) {
	var conditions []string
	var args []interface{}

	switch sel := sel.(type) {
	case selector.All:
	case selector.Done:
		conditions = append(conditions, "done = 1")
	case selector.Open:
		conditions = append(conditions, "done = 0")
	case selector.OnDate:
		from := startOfDay(sel.Date)
		conditions = append(conditions, "due_date >= ? AND due_date < ?")
		args = append(args, from, from.Add(day))
	case selector.Between:
		conditions = append(conditions, "due_date >= ? AND due_date < ?")
		args = append(args, startOfDay(sel.From), startOfDay(sel.To).Add(day))
	case selector.Within:
		conditions = append(conditions, "done = 0", "due_date <= ?")
		args = append(args, wallClock(now).Add(sel.Duration()))
	default:
		return "", nil, fmt.Errorf("unsupported selector %T", sel)
	}

	query := "SELECT id, topic, done, due_date, description FROM todo"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return query, args, nil
}

// wallClock reinterprets the local wall time of t as UTC. Due dates are
// calendar values stored as UTC, so "now" must be compared by its wall time.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// startOfDay truncates t to midnight UTC of its calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// scanTodo scans a todo row from sqlx.Rows.
func scanTodo(rows interface{ Scan(dest ...interface{}) error }) (model.Todo, error) {
	var (
		todo    model.Todo
		doneInt int
		dueDate time.Time
	)

	err := rows.Scan(&todo.ID, &todo.Topic, &doneInt, &dueDate, &todo.Description)
	if err != nil {
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}

	todo.Done = doneInt != 0
	todo.DueDate = dueDate
	return todo, nil
}
