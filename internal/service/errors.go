package service

import "errors"

// Task errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskInvalid  = errors.New("task invalid args")
)

// Project errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectInvalid  = errors.New("project invalid args")
)
