package extract

import "fmt"

// UnsupportedTypeError rejects an upload whose media type and extension match
// none of the supported formats. Raised before any decode attempt.
type UnsupportedTypeError struct {
	Filename  string
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type for %q (media type %q): supported formats are PDF, Excel (.xlsx, .xls) and images (.png, .jpg, .jpeg, .webp, .heic)", e.Filename, e.MediaType)
}

// CorruptFileError signals a decode failure, including password-protected files.
type CorruptFileError struct {
	Format string
	Err    error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("failed to read %s file: %v", e.Format, e.Err)
}

func (e *CorruptFileError) Unwrap() error { return e.Err }

// EmptyContentError signals a file that decoded fine but yielded no usable
// content. Hint carries format-specific remediation wording for the user.
type EmptyContentError struct {
	Format string
	Hint   string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no usable content in %s file: %s", e.Format, e.Hint)
}

// IOError signals that the raw bytes could not be read at all.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read file: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
