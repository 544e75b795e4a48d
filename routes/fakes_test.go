package routes

import (
	"context"
	"slices"
	"sort"
	"sync"

	"taskboard-api/db"
	"taskboard-api/models"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]models.User{}}
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		list = append(list, user)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

func (f *fakeUsers) Create(_ context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return nil, db.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, patch models.UserPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return db.ErrNotFound
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.ProfileImage != nil {
		user.ProfileImage = patch.ProfileImage
	}
	f.users[id] = user
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeRegistry struct {
	mu      sync.Mutex
	nextID  int64
	entries []models.Entry
	// inUse simula la FK de users.role
	inUse func(name string) bool
}

func (f *fakeRegistry) List(_ context.Context) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := slices.Clone(f.entries)
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *fakeRegistry) find(id int64) int {
	return slices.IndexFunc(f.entries, func(e models.Entry) bool { return e.ID == id })
}

func (f *fakeRegistry) Get(_ context.Context, id int64) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return nil, db.ErrNotFound
	}
	entry := f.entries[i]
	return &entry, nil
}

func (f *fakeRegistry) Exists(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.ContainsFunc(f.entries, func(e models.Entry) bool { return e.Name == name }), nil
}

func (f *fakeRegistry) Create(ctx context.Context, name string, description *string) (*models.Entry, error) {
	if exists, _ := f.Exists(ctx, name); exists {
		return nil, db.ErrDuplicate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry := models.Entry{ID: f.nextID, Name: name, Description: description}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeRegistry) Update(_ context.Context, id int64, name string, description *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return db.ErrNotFound
	}
	f.entries[i].Name = name
	f.entries[i].Description = description
	return nil
}

func (f *fakeRegistry) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return db.ErrNotFound
	}
	if f.inUse != nil && f.inUse(f.entries[i].Name) {
		return db.ErrForeignKey
	}
	f.entries = slices.Delete(f.entries, i, i+1)
	return nil
}

type fakeTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
	users  *fakeUsers
}

func (f *fakeTasks) List(_ context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]models.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		list = append(list, task)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeTasks) Get(_ context.Context, id int64) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &task, nil
}

func (f *fakeTasks) assignees(ctx context.Context, ids []int64) ([]int64, []string, error) {
	names := []string{}
	for _, id := range ids {
		user, err := f.users.FindByID(ctx, id)
		if err != nil {
			return nil, nil, db.ErrForeignKey
		}
		names = append(names, user.Username)
	}
	return slices.Clone(ids), names, nil
}

func (f *fakeTasks) Create(ctx context.Context, in models.NewTask) (*models.Task, error) {
	ids, names, err := f.assignees(ctx, db.UniqueIDs(in.UserIDs))
	if err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = models.DefaultColor
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task := models.Task{
		ID: f.nextID, Title: in.Title, Description: in.Description,
		Status: in.Status, Priority: in.Priority, Tags: in.Tags, Color: color,
		UserIDs: ids, UserNames: names,
	}
	f.tasks[task.ID] = task
	return &task, nil
}

func (f *fakeTasks) Update(ctx context.Context, id int64, patch models.TaskPatch) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}

	var ids []int64
	var names []string
	if patch.UserIDs != nil {
		var err error
		if ids, names, err = f.assignees(ctx, *patch.UserIDs); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	task := f.tasks[id]
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
	}
	if patch.UserIDs != nil {
		task.UserIDs, task.UserNames = ids, names
	}
	f.tasks[id] = task
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }
