package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MediaKind distinguishes the two upload classes the diagnosis flow accepts.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

var (
	allowedImageMIMEs = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
	}
	allowedVideoMIMEs = map[string]string{
		"video/mp4":       ".mp4",
		"video/x-msvideo": ".avi",
		"video/quicktime": ".mov",
	}
)

type SavedFile struct {
	OriginalName string
	FileName     string
	Path         string
	URL          string
	MIME         string
	Kind         string
	Size         int64
}

// FileStoreInterface lets services be tested without touching the disk.
type FileStoreInterface interface {
	SaveImage(fh *multipart.FileHeader) (*SavedFile, error)
	SaveVideo(fh *multipart.FileHeader) (*SavedFile, error)
	SaveMedia(fh *multipart.FileHeader) (*SavedFile, error)
	SaveBytes(data []byte, ext string) (*SavedFile, error)
	Remove(path string)
}

// FileStore writes uploads under a single directory with uuid filenames.
// MIME types are sniffed from content, never trusted from the client, and
// nothing is written to disk until the file has passed validation.
type FileStore struct {
	dir      string
	maxBytes int64
}

func NewFileStore(dir string, maxBytes int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *FileStore) SaveImage(fh *multipart.FileHeader) (*SavedFile, error) {
	return s.save(fh, allowedImageMIMEs, MediaKindImage)
}

func (s *FileStore) SaveVideo(fh *multipart.FileHeader) (*SavedFile, error) {
	return s.save(fh, allowedVideoMIMEs, MediaKindVideo)
}

// SaveMedia accepts either an image or a video, reporting which it stored.
func (s *FileStore) SaveMedia(fh *multipart.FileHeader) (*SavedFile, error) {
	if fh == nil {
		return nil, ErrFileRequired
	}
	merged := make(map[string]string, len(allowedImageMIMEs)+len(allowedVideoMIMEs))
	for k, v := range allowedImageMIMEs {
		merged[k] = v
	}
	for k, v := range allowedVideoMIMEs {
		merged[k] = v
	}
	saved, err := s.save(fh, merged, "")
	if err != nil {
		return nil, err
	}
	if _, ok := allowedImageMIMEs[saved.MIME]; ok {
		saved.Kind = MediaKindImage
	} else {
		saved.Kind = MediaKindVideo
	}
	return saved, nil
}

// SaveBytes stores already-generated content (e.g. synthesized audio).
func (s *FileStore) SaveBytes(data []byte, ext string) (*SavedFile, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}
	return &SavedFile{
		FileName: name,
		Path:     path,
		URL:      "/uploads/" + name,
		Size:     int64(len(data)),
	}, nil
}

// Remove is best-effort cleanup; a missing file is not an error.
func (s *FileStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Error cleaning up file %s: %v", path, err)
	}
}

func (s *FileStore) save(fh *multipart.FileHeader, allowed map[string]string, kind string) (*SavedFile, error) {
	if fh == nil {
		return nil, ErrFileRequired
	}
	if fh.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	head := make([]byte, 3072)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	ext, ok := allowed[mtype.String()]
	if !ok {
		return nil, ErrInvalidFileType
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	written := int64(0)
	if _, err := dst.Write(head); err == nil {
		var copied int64
		copied, err = io.Copy(dst, src)
		written = int64(len(head)) + copied
	}
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.Remove(path)
		return nil, err
	}

	return &SavedFile{
		OriginalName: fh.Filename,
		FileName:     name,
		Path:         path,
		URL:          "/uploads/" + name,
		MIME:         mtype.String(),
		Kind:         kind,
		Size:         written,
	}, nil
}
