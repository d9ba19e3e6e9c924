package serviceutils

import "github.com/labstack/echo/v4"

type apiResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ResponseSuccess writes a uniform success envelope.
func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, apiResponse{Message: message, Data: data})
}

// ResponseError writes a uniform error envelope. The underlying error is
// included verbatim; handlers only reach here for caller mistakes, never
// for repaired boundary input.
func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := apiResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.JSON(status, resp)
}
