// Package resource builds file indexes over a code unit's embedded files and
// hands out Handles for single files. A Handle may represent a missing file;
// absence is a regular value, not an error. ReadLines is the manifest reader
// used for module.names.map and module.assets.map.
package resource
