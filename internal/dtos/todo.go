package dtos

type CreateTodoRequest struct {
	Task string `json:"task" validate:"required"`
}

type TodoResponse struct {
	Id        int64  `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

type ToggleTodoResponse struct {
	Id        int64 `json:"id"`
	Completed bool  `json:"completed"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
