package pageloader

import "errors"

const Namespace = "pageloader"

var (
	ErrInvalidState = errors.New(
		Namespace + ": scheduler is not started or already closed",
	)
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrLoadCancelled = errors.New(Namespace + ": load cancelled")
	ErrFetchPanicked = errors.New(Namespace + ": fetch panicked")
	ErrConstruction  = errors.New(Namespace + ": helper could not build a fetch task")
)
