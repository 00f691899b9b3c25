package http

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocs sync.Once

// openAPIDoc feeds the embedded document to swag, which echo-swagger reads
// its doc.json from.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// RegisterDocs serves the Swagger UI under /swagger/.
func RegisterDocs(e *echo.Echo, doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	registerDocs.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(raw)})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
