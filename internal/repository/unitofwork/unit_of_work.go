package unitofwork

import (
	"context"

	"ai-chat-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical transaction. The
// multi-statement deletes (votes before messages, suggestions before document
// versions) depend on Begin/Commit to be all-or-nothing.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
	VoteRepository() contract.VoteRepository
	DocumentRepository() contract.DocumentRepository
	SuggestionRepository() contract.SuggestionRepository
}
