package implementation

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/dberr"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewVoteRepository(db *gorm.DB) contract.VoteRepository {
	return &VoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *VoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert relies on the composite primary key (chat_id, message_id): an insert
// that conflicts overwrites is_upvoted instead of adding a row.
func (r *VoteRepositoryImpl) Upsert(ctx context.Context, vote *entity.Vote) error {
	modelVote := &model.Vote{
		ChatId:    vote.ChatId,
		MessageId: vote.MessageId,
		IsUpvoted: vote.IsUpvoted,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "message_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_upvoted"}),
	}).Create(modelVote).Error
	if err != nil {
		return dberr.Translate("voteMessage", err)
	}
	return nil
}

func (r *VoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vote, error) {
	var models []*model.Vote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, dberr.Translate("getVotesByChatId", err)
	}

	return r.mapper.VotesToEntities(models), nil
}

// DeleteByChatAfter removes votes whose message was created after the cutoff.
// The message may be about to be deleted in the same transaction, so the
// filter goes through a subquery rather than a join on live rows.
func (r *VoteRepositoryImpl) DeleteByChatAfter(ctx context.Context, chatId uuid.UUID, timestamp time.Time) error {
	subQuery := r.db.Model(&model.Message{}).
		Select("id").
		Where("chat_id = ? AND created_at > ?", chatId, timestamp)

	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND message_id IN (?)", chatId, subQuery).
		Delete(&model.Vote{}).Error
	if err != nil {
		return dberr.Translate("deleteMessagesByChatIdAfterTimestamp", err)
	}
	return nil
}
