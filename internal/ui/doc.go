// Package ui renders the live scan progress view with Bubbletea and opens
// folders in the desktop file manager.
package ui
