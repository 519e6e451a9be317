package assets

import "errors"

// Sentinel errors for resource operations.
var (
	// ErrResourceNotFound indicates the resource is absent from every search root.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrTemplateNotFound indicates the requested embedded skeleton does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates the resource name contains traversal
	// sequences, absolute paths or forbidden characters.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates a configured search root is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading a resource file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside a search root.
	ErrPathTraversal = errors.New("path traversal detected")
)
