package internal

import (
	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// AppInternal is the application context aggregating every CLI controller.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
