package port

import (
	"context"

	"github.com/google/uuid"
)

// VisitRecorderPort учитывает просмотр карточки объявления
type VisitRecorderPort interface {
	RecordVisit(ctx context.Context, listingID uuid.UUID)
}
