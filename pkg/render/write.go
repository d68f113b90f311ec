// File: pkg/render/write.go
package render

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"jdtools/pkg/extract"

	"go.uber.org/zap"
)

// WriteFile renders res into outputPath, creating parent directories as needed.
func WriteFile(outputPath string, res *extract.Result, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing collection to output file", zap.String("outputFile", outputPath))

	if err := ensureDirectory(filepath.Dir(outputPath), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(err))
		}
	}()

	writer := bufio.NewWriter(outFile)
	if err := Render(writer, res, opts); err != nil {
		logger.Error("Failed to render collection", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to render collection: %w", err)
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Info("Wrote collection", zap.String("outputFile", outputPath), zap.Int("totalFiles", len(res.Files)))
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
