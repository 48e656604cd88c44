package remote

// User is a remote user record.
type User struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
}

// Post is a remote post tagged with its author.
type Post struct {
	ID     int    `json:"id" yaml:"id"`
	UserID int    `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Todo is a remote todo tagged with its owner.
type Todo struct {
	ID        int    `json:"id" yaml:"id"`
	UserID    int    `json:"userId" yaml:"userId"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Snapshot holds the three collections analytics derives from.
type Snapshot struct {
	Users []User
	Posts []Post
	Todos []Todo
}
