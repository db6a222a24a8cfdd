package validator

import (
	"fmt"
	"mime"
	"strings"
)

const (
	maxProjectNameLen = 255
	maxDescriptionLen = 1024
	maxFileNameLen    = 255
	maxContentTypeLen = 255
	asciiControlEnd   = 32
	asciiDelete       = 127

	errProjectNameEmptyFmt     = "project name cannot be empty"
	errProjectNameMaxLengthFmt = "project name must not exceed %d characters"
	errDescriptionMaxLenFmt    = "description must not exceed %d characters"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errContentTypeMaxLengthFmt = "content type must not exceed %d characters"
	errContentTypeInvalidFmt   = "invalid content type"
)

func ProjectName(name string) error {
	if name == "" {
		return fmt.Errorf(errProjectNameEmptyFmt)
	}

	if len(name) > maxProjectNameLen {
		return fmt.Errorf(errProjectNameMaxLengthFmt, maxProjectNameLen)
	}

	return nil
}

func Description(desc string) error {
	if len(desc) > maxDescriptionLen {
		return fmt.Errorf(errDescriptionMaxLenFmt, maxDescriptionLen)
	}

	return nil
}

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, r := range name {
		if r < asciiControlEnd || r == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}

	return nil
}

func ContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if len(contentType) > maxContentTypeLen {
		return fmt.Errorf(errContentTypeMaxLengthFmt, maxContentTypeLen)
	}

	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return fmt.Errorf(errContentTypeInvalidFmt)
	}

	return nil
}
