package service

import (
	"context"

	"go.uber.org/zap"
)

type uploadService struct {
	logger    *zap.Logger
	presigner Presigner
}

func newUploadService(logger *zap.Logger, presigner Presigner) Upload {
	return &uploadService{
		logger:    logger,
		presigner: presigner,
	}
}

func (s *uploadService) UploadURL(ctx context.Context) (string, error) {
	if s.presigner == nil {
		s.logger.Error("upload url requested but no bucket is configured")
		return "", ErrInternal
	}

	url, err := s.presigner.UploadURL(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to presign upload url: %s", err.Error())
		return "", ErrInternal
	}

	return url, nil
}
