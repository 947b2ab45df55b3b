/*
File    : saga/std/file_io.go
*/
package std

import (
	"fmt"
	"io"
	"os"

	"github.com/saga-lang/saga/objects"
)

// fileIOMethods are the filesystem natives. Each invocation opens, uses,
// and releases its file before returning, on every exit path; no handle
// ever escapes into the value domain.
var fileIOMethods = []*Builtin{
	{Name: "read_file", ArityCount: 1, Callback: readFile},     // Reads entire file content as string
	{Name: "write_file", ArityCount: 2, Callback: writeFile},   // Writes string to a file (overwrites)
	{Name: "append_file", ArityCount: 2, Callback: appendFile}, // Appends string to a file
	{Name: "file_exists", ArityCount: 1, Callback: fileExists}, // Checks if a regular file exists
	{Name: "delete_file", ArityCount: 1, Callback: deleteFile}, // Removes a file
}

// init registers the file I/O natives.
func init() {
	Builtins = append(Builtins, fileIOMethods...)
}

// readFile reads the entire contents of a file into a string.
//
// Syntax: read_file(path)
func readFile(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	path := args[0].ToString()
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return createError(fmt.Sprintf("File not found: %s", path))
		}
		return createError(fmt.Sprintf("Error reading file: %v", err))
	}
	return &objects.String{Value: string(content)}
}

// writeFile writes a string to a file, creating it if needed and
// overwriting any existing content.
//
// Syntax: write_file(path, content)
func writeFile(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	path := args[0].ToString()
	content := args[1].ToString()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return createError(fmt.Sprintf("Error writing file: %v", err))
	}
	return &objects.Nil{}
}

// appendFile appends a string to a file, creating it if needed.
//
// Syntax: append_file(path, content)
func appendFile(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	path := args[0].ToString()
	content := args[1].ToString()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return createError(fmt.Sprintf("Error appending to file: %v", err))
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return createError(fmt.Sprintf("Error appending to file: %v", err))
	}
	return &objects.Nil{}
}

// fileExists reports whether path names an existing regular file.
//
// Syntax: file_exists(path)
func fileExists(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	info, err := os.Stat(args[0].ToString())
	if err != nil {
		return &objects.Boolean{Value: false}
	}
	return &objects.Boolean{Value: info.Mode().IsRegular()}
}

// deleteFile removes a file.
//
// Syntax: delete_file(path)
func deleteFile(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	path := args[0].ToString()
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return createError(fmt.Sprintf("File not found: %s", path))
		}
		return createError(fmt.Sprintf("Error deleting file: %v", err))
	}
	return &objects.Nil{}
}
