package httputil

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/go-playground/validator/v10"
	"github.com/mdayat/todo-app/internal/dtos"
)

func DecodeAndValidate(req *http.Request, validate *validator.Validate, v interface{}) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return err
	}

	if err := validate.Struct(v); err != nil {
		return err
	}

	return nil
}

type SendSuccessResponseParams struct {
	StatusCode int
	ResBody    interface{}
}

func SendSuccessResponse(res http.ResponseWriter, params SendSuccessResponseParams) error {
	return sendJSON(res, params.StatusCode, params.ResBody)
}

// SendErrorResponse writes {"error": message} with the given status.
func SendErrorResponse(res http.ResponseWriter, statusCode int, message string) error {
	return sendJSON(res, statusCode, dtos.ErrorResponse{Error: message})
}

func sendJSON(res http.ResponseWriter, statusCode int, body interface{}) error {
	if body == nil {
		res.WriteHeader(statusCode)
		return nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	_, err = res.Write(payload)
	return err
}
