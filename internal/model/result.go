package model

import "fmt"

// DeleteResult is the outcome of deleting a single path
type DeleteResult struct {
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds a successful result
func Succeeded(path string) DeleteResult {
	return DeleteResult{Path: path, Success: true}
}

// Failed builds a failed result carrying the error text
func Failed(path string, err error) DeleteResult {
	return DeleteResult{Path: path, Error: err.Error()}
}

// RootError reports a scan root that could not be traversed
type RootError struct {
	Root string
	Err  error
}

func (e RootError) Error() string {
	return fmt.Sprintf("%s: %v", e.Root, e.Err)
}

func (e RootError) Unwrap() error {
	return e.Err
}
