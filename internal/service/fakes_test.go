package service

import (
	"context"
	"sort"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/dberr"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeUnitOfWork wires in-memory repositories so service logic runs without a
// database. Begin/Commit are tracked but not transactional; the sequencing
// assertions live in the repositories themselves.
type fakeUnitOfWork struct {
	users       *fakeUserRepo
	chats       *fakeChatRepo
	messages    *fakeMessageRepo
	votes       *fakeVoteRepo
	documents   *fakeDocumentRepo
	suggestions *fakeSuggestionRepo

	begun     int
	committed int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:       &fakeUserRepo{},
		chats:       &fakeChatRepo{},
		messages:    &fakeMessageRepo{},
		votes:       &fakeVoteRepo{},
		documents:   &fakeDocumentRepo{},
		suggestions: &fakeSuggestionRepo{},
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { f.begun++; return nil }
func (f *fakeUnitOfWork) Commit() error                   { f.committed++; return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository             { return f.users }
func (f *fakeUnitOfWork) ChatRepository() contract.ChatRepository             { return f.chats }
func (f *fakeUnitOfWork) MessageRepository() contract.MessageRepository       { return f.messages }
func (f *fakeUnitOfWork) VoteRepository() contract.VoteRepository             { return f.votes }
func (f *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository     { return f.documents }
func (f *fakeUnitOfWork) SuggestionRepository() contract.SuggestionRepository { return f.suggestions }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = &fakeFactory{}

// --- Users ---

type fakeUserRepo struct {
	users     []*entity.User
	createErr error
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return dberr.Translate("createUser", gorm.ErrDuplicatedKey)
		}
	}
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if len(r.users) == 0 {
		return nil, nil
	}
	return r.users[0], nil
}

// --- Chats ---

type fakeChatRepo struct {
	chats []*entity.Chat
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.chats = append(r.chats, chat)
	return nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range r.chats {
		if c.Id == id {
			r.chats = append(r.chats[:i], r.chats[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	// Tests only filter by id, carried via ByID.
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, c := range r.chats {
				if c.Id == byID.ID {
					return c, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	return r.chats, nil
}

func (r *fakeChatRepo) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Chat, error) {
	var out []*entity.Chat
	for _, c := range r.chats {
		if c.UserId == userId {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeChatRepo) UpdateVisibility(ctx context.Context, id uuid.UUID, visibility entity.ChatVisibility) error {
	for _, c := range r.chats {
		if c.Id == id {
			c.Visibility = visibility
			return nil
		}
	}
	return dberr.Translate("updateChatVisibilityById", gorm.ErrRecordNotFound)
}

func (r *fakeChatRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	for _, c := range r.chats {
		if c.Id == id {
			c.Title = title
			return nil
		}
	}
	return dberr.Translate("updateChatTitleById", gorm.ErrRecordNotFound)
}

// --- Messages ---

type fakeMessageRepo struct {
	messages []*entity.Message
}

func (r *fakeMessageRepo) CreateMany(ctx context.Context, msgs []*entity.Message) (int64, error) {
	r.messages = append(r.messages, msgs...)
	return int64(len(msgs)), nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var id uuid.UUID
	var chatId uuid.UUID
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id = s.ID
		case specification.ByChat:
			chatId = s.ChatID
		}
	}
	for _, m := range r.messages {
		if m.Id == id && (chatId == uuid.Nil || m.ChatId == chatId) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindByChat(ctx context.Context, chatId uuid.UUID) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.messages {
		if m.ChatId == chatId {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) DeleteByChatAfter(ctx context.Context, chatId uuid.UUID, timestamp time.Time) (int64, error) {
	var kept []*entity.Message
	var deleted int64
	for _, m := range r.messages {
		if m.ChatId == chatId && m.CreatedAt.After(timestamp) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

// --- Votes ---

type fakeVoteRepo struct {
	votes []*entity.Vote
}

func (r *fakeVoteRepo) Upsert(ctx context.Context, vote *entity.Vote) error {
	for _, v := range r.votes {
		if v.ChatId == vote.ChatId && v.MessageId == vote.MessageId {
			v.IsUpvoted = vote.IsUpvoted
			return nil
		}
	}
	r.votes = append(r.votes, vote)
	return nil
}

func (r *fakeVoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vote, error) {
	return r.votes, nil
}

func (r *fakeVoteRepo) DeleteByChatAfter(ctx context.Context, chatId uuid.UUID, timestamp time.Time) error {
	return nil
}

// --- Documents ---

type fakeDocumentRepo struct {
	documents []*entity.Document
	createErr error
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.documents = append(r.documents, doc)
	return nil
}

func (r *fakeDocumentRepo) FindVersions(ctx context.Context, id uuid.UUID) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.documents {
		if d.Id == id {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDocumentRepo) FindLatest(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	versions, _ := r.FindVersions(ctx, id)
	if len(versions) == 0 {
		return nil, nil
	}
	return versions[len(versions)-1], nil
}

func (r *fakeDocumentRepo) DeleteVersionsAfter(ctx context.Context, id uuid.UUID, timestamp time.Time) (int64, error) {
	var kept []*entity.Document
	var deleted int64
	for _, d := range r.documents {
		if d.Id == id && d.CreatedAt.After(timestamp) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	r.documents = kept
	return deleted, nil
}

// --- Suggestions ---

type fakeSuggestionRepo struct {
	suggestions []*entity.Suggestion
}

func (r *fakeSuggestionRepo) CreateMany(ctx context.Context, suggestions []*entity.Suggestion) (int64, error) {
	r.suggestions = append(r.suggestions, suggestions...)
	return int64(len(suggestions)), nil
}

func (r *fakeSuggestionRepo) FindByDocument(ctx context.Context, documentId uuid.UUID) ([]*entity.Suggestion, error) {
	var out []*entity.Suggestion
	for _, s := range r.suggestions {
		if s.DocumentId == documentId {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSuggestionRepo) DeleteByDocumentAfter(ctx context.Context, documentId uuid.UUID, timestamp time.Time) error {
	var kept []*entity.Suggestion
	for _, s := range r.suggestions {
		if s.DocumentId == documentId && s.DocumentCreatedAt.After(timestamp) {
			continue
		}
		kept = append(kept, s)
	}
	r.suggestions = kept
	return nil
}

// --- LLM ---

// fakeLLM scripts the provider: text fragments for StreamText, snapshots for
// StreamCode, a fixed string for Generate.
type fakeLLM struct {
	textFragments []string
	codeSnapshots []string
	generated     string
	generateErr   error
	streamErr     error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.generated, f.generateErr
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.generated, f.generateErr
}

func (f *fakeLLM) StreamText(ctx context.Context, system, prompt string, onDelta llm.TextDeltaFunc, opts ...llm.Option) error {
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, fragment := range f.textFragments {
		if err := onDelta(fragment); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLLM) StreamCode(ctx context.Context, system, prompt string, onSnapshot llm.CodeSnapshotFunc, opts ...llm.Option) error {
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, snapshot := range f.codeSnapshots {
		if err := onSnapshot(snapshot); err != nil {
			return err
		}
	}
	return nil
}

var _ llm.LLMProvider = &fakeLLM{}

// --- Logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
