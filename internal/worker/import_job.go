package worker

import (
	"context"
	"fmt"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

// WordImportJob inserts a parsed batch of vocabulary words. Parsing
// happens before submission so a malformed file fails fast in the
// request, not in the background.
type WordImportJob struct {
	WordRepo repository.WordRepository
	Words    []models.Word
	Source   string
}

func (j *WordImportJob) Name() string {
	return fmt.Sprintf("word-import(%s)", j.Source)
}

func (j *WordImportJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("importing %d words from %s", len(j.Words), j.Source)

	ids, err := j.WordRepo.InsertBatch(ctx, j.Words)
	if err != nil {
		return fmt.Errorf("insert word batch: %w", err)
	}
	log.Info("imported %d words", len(ids))
	return nil
}
