package builder

import "fmt"

// DataSourceError reports a corpus that could not be fetched.
type DataSourceError struct {
	Lang string
	Size int
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("failed to fetch %s corpus (size %d): %v", e.Lang, e.Size, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// FileWriteError reports an output file that could not be written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}
