package db

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"taskboard-api/models"
	"taskboard-api/pkg"
)

type TaskRepository struct {
	db *Database
}

func NewTaskRepository(db *Database) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelect = `
	SELECT
		t.id, t.title, t.description, t.status, t.priority, t.tags, t.color,
		t.completed, t.created_at, tu.user_id, u.username
	FROM task_manager t
	LEFT JOIN task_users tu ON t.id = tu.task_id
	LEFT JOIN users u ON tu.user_id = u.id`

const taskOrder = ` ORDER BY t.created_at DESC, t.id DESC, tu.user_id ASC`

// List devuelve todas las tareas, las más recientes primero, con los ids y
// nombres de sus usuarios asignados (sin repetir)
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	return queryTasks(ctx, r.db.Conn, taskSelect+taskOrder)
}

func (r *TaskRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	return getTask(ctx, r.db.Conn, id)
}

func getTask(ctx context.Context, q querier, id int64) (*models.Task, error) {
	tasks, err := queryTasks(ctx, q, taskSelect+" WHERE t.id = ?"+taskOrder, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

// queryTasks agrupa las filas del LEFT JOIN (una por usuario asignado) en una
// tarea por id, respetando el orden de la consulta
func queryTasks(ctx context.Context, q querier, query string, args ...any) ([]models.Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	index := map[int64]int{}

	for rows.Next() {
		var (
			task        models.Task
			description sql.NullString
			color       sql.NullString
			createdAt   sql.NullTime
			rawTags     any
			userID      sql.NullInt64
			username    sql.NullString
		)
		err := rows.Scan(&task.ID, &task.Title, &description, &task.Status, &task.Priority,
			&rawTags, &color, &task.Completed, &createdAt, &userID, &username)
		if err != nil {
			return nil, err
		}

		pos, seen := index[task.ID]
		if !seen {
			task.Description = description.String
			task.Color = color.String
			task.CreatedAt = createdAt.Time
			task.Tags = pkg.NormalizeTags(rawTags)
			task.UserIDs = []int64{}
			task.UserNames = []string{}
			tasks = append(tasks, task)
			pos = len(tasks) - 1
			index[task.ID] = pos
		}

		current := &tasks[pos]
		if userID.Valid && !slices.Contains(current.UserIDs, userID.Int64) {
			current.UserIDs = append(current.UserIDs, userID.Int64)
		}
		if username.Valid && !slices.Contains(current.UserNames, username.String) {
			current.UserNames = append(current.UserNames, username.String)
		}
	}

	return tasks, rows.Err()
}

// Create inserta la tarea y sus asignaciones en una sola transacción
func (r *TaskRepository) Create(ctx context.Context, in models.NewTask) (*models.Task, error) {
	tags, err := pkg.EncodeTags(in.Tags)
	if err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = models.DefaultColor
	}

	var created *models.Task
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO task_manager (title, description, status, priority, tags, color, completed)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			in.Title, in.Description, in.Status, in.Priority, tags, color, false,
		)
		if err != nil {
			return classify(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		if err := assignUsers(ctx, tx, id, in.UserIDs); err != nil {
			return err
		}

		created, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// taskColumn relaciona cada campo del patch con su columna
type taskColumn struct {
	name  string
	value func(p models.TaskPatch) (any, bool, error)
}

var taskColumns = []taskColumn{
	{"title", func(p models.TaskPatch) (any, bool, error) {
		if p.Title == nil {
			return nil, false, nil
		}
		return strings.TrimSpace(*p.Title), true, nil
	}},
	{"description", func(p models.TaskPatch) (any, bool, error) {
		if p.Description == nil {
			return nil, false, nil
		}
		return *p.Description, true, nil
	}},
	{"completed", func(p models.TaskPatch) (any, bool, error) {
		if p.Completed == nil {
			return nil, false, nil
		}
		return *p.Completed, true, nil
	}},
	{"status", func(p models.TaskPatch) (any, bool, error) {
		if p.Status == nil {
			return nil, false, nil
		}
		return *p.Status, true, nil
	}},
	{"priority", func(p models.TaskPatch) (any, bool, error) {
		if p.Priority == nil {
			return nil, false, nil
		}
		return *p.Priority, true, nil
	}},
	{"tags", func(p models.TaskPatch) (any, bool, error) {
		if p.Tags == nil {
			return nil, false, nil
		}
		encoded, err := pkg.EncodeTags(*p.Tags)
		return encoded, true, err
	}},
	{"color", func(p models.TaskPatch) (any, bool, error) {
		if p.Color == nil {
			return nil, false, nil
		}
		return *p.Color, true, nil
	}},
}

// Update aplica el patch. Si trae UserIDs, el conjunto de asignados se
// reemplaza entero (borrar todo e insertar). Ambos pasos van en una transacción.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch models.TaskPatch) error {
	var sets []string
	var args []any
	for _, col := range taskColumns {
		value, ok, err := col.value(patch)
		if err != nil {
			return err
		}
		if ok {
			sets = append(sets, col.name+" = ?")
			args = append(args, value)
		}
	}

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		if len(sets) > 0 {
			args = append(args, id)
			res, err := tx.ExecContext(ctx, "UPDATE task_manager SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
			if err != nil {
				return classify(err)
			}
			if err := expectAffected(res); err != nil {
				return err
			}
		} else {
			var count int
			if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM task_manager WHERE id = ?", id).Scan(&count); err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
		}

		if patch.UserIDs == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM task_users WHERE task_id = ?", id); err != nil {
			return err
		}
		return assignUsers(ctx, tx, id, *patch.UserIDs)
	})
}

// Delete borra la tarea; sus asignaciones se borran en cascada
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Conn.ExecContext(ctx, "DELETE FROM task_manager WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}

	return expectAffected(res)
}

// assignUsers crea una fila en task_users por usuario. Una lista vacía no hace nada.
func assignUsers(ctx context.Context, q querier, taskID int64, userIDs []int64) error {
	userIDs = UniqueIDs(userIDs)
	if len(userIDs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(userIDs))
	args := make([]any, 0, len(userIDs)*2)
	for _, userID := range userIDs {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, taskID, userID)
	}

	_, err := q.ExecContext(ctx, "INSERT INTO task_users (task_id, user_id) VALUES "+strings.Join(placeholders, ", "), args...)
	return classify(err)
}

// UniqueIDs elimina repetidos conservando el orden
func UniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
