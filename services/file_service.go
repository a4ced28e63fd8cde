package services

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type FileService struct {
	client *api.Client
}

func NewFileService(c *api.Client) *FileService {
	return &FileService{client: c}
}

func (s *FileService) UploadImage(ctx context.Context, f api.FilePart) (cinemamodel.FileUploadResponse, error) {
	return s.uploadOne(ctx, RouteUploadImage, f)
}

func (s *FileService) UploadMoviePoster(ctx context.Context, f api.FilePart) (cinemamodel.FileUploadResponse, error) {
	return s.uploadOne(ctx, RouteUploadMoviePoster, f)
}

func (s *FileService) UploadMovieBackdrop(ctx context.Context, f api.FilePart) (cinemamodel.FileUploadResponse, error) {
	return s.uploadOne(ctx, RouteUploadMovieBackdrop, f)
}

func (s *FileService) UploadImages(ctx context.Context, files ...api.FilePart) ([]cinemamodel.FileUploadResponse, error) {
	for i := range files {
		files[i].Field = "files"
	}
	var out []cinemamodel.FileUploadResponse
	err := s.client.Send(ctx, http.MethodPost, RouteUploadImages, nil, &out, api.Multipart(files...))
	return out, err
}

func (s *FileService) Delete(ctx context.Context, fileURL string) error {
	return api.Delete(ctx, s.client, RouteFileDelete, api.Query("fileUrl", fileURL))
}

func (s *FileService) uploadOne(ctx context.Context, path string, f api.FilePart) (cinemamodel.FileUploadResponse, error) {
	f.Field = "file"
	var out cinemamodel.FileUploadResponse
	err := s.client.Send(ctx, http.MethodPost, path, nil, &out, api.Multipart(f))
	return out, err
}
