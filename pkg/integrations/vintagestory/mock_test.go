package vintagestory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
)

// mockGateway serves canned data and counts calls per method.
type mockGateway struct {
	mu    sync.Mutex
	calls map[string]int

	mods     []ModSummary
	authors  []Author
	tags     []Tag
	versions []GameVersion
	comments map[int][]Comment

	// err, when set, is returned by every method.
	err error
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		calls: make(map[string]int),
		mods: []ModSummary{
			{ModID: 1, AssetID: 101, Name: "Alpha", Author: "Tyron", Tags: []string{}, ModIDStrs: []string{"alpha"}},
			{ModID: 2, AssetID: 102, Name: "Beta", Author: "Saraty", Tags: []string{}, ModIDStrs: []string{"beta"}},
			{ModID: 3, AssetID: 103, Name: "Gamma", Author: "Tyron", Tags: []string{}, ModIDStrs: []string{"gamma"}},
		},
		authors: []Author{
			{UserID: 10, Name: ptr("Tyron")},
			{UserID: 11, Name: ptr("Saraty")},
		},
		tags:     []Tag{{TagID: 1, Name: "Utility", Color: "#fff"}, {TagID: 2, Name: "QoL", Color: "#000"}},
		versions: []GameVersion{{TagID: -1, Name: "1.19.4", Color: "#ccc"}},
		comments: map[int][]Comment{
			101: {{CommentID: 1, AssetID: 101, UserID: 10, Text: "hi"}},
		},
	}
}

func (m *mockGateway) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockGateway) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	return m.err
}

func (m *mockGateway) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockGateway) ListMods(ctx context.Context) ([]ModSummary, error) {
	if err := m.record("ListMods"); err != nil {
		return nil, err
	}
	return m.mods, nil
}

func (m *mockGateway) GetMod(ctx context.Context, modID int) (*Mod, error) {
	if err := m.record("GetMod"); err != nil {
		return nil, err
	}
	for _, s := range m.mods {
		if s.ModID == modID {
			mod := s.ToMod()
			mod.Text = fmt.Sprintf("fetch #%d", m.count("GetMod"))
			return mod, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "mod %d not found", modID)
}

func (m *mockGateway) ListTags(ctx context.Context) ([]Tag, error) {
	if err := m.record("ListTags"); err != nil {
		return nil, err
	}
	return m.tags, nil
}

func (m *mockGateway) ListAuthors(ctx context.Context) ([]Author, error) {
	if err := m.record("ListAuthors"); err != nil {
		return nil, err
	}
	return m.authors, nil
}

func (m *mockGateway) GetAuthor(ctx context.Context, userID int) (*Author, error) {
	if err := m.record("GetAuthor"); err != nil {
		return nil, err
	}
	for _, a := range m.authors {
		if a.UserID == userID {
			return &a, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "author %d not found", userID)
}

func (m *mockGateway) ListGameVersions(ctx context.Context) ([]GameVersion, error) {
	if err := m.record("ListGameVersions"); err != nil {
		return nil, err
	}
	return m.versions, nil
}

func (m *mockGateway) ListComments(ctx context.Context, assetID int) ([]Comment, error) {
	if err := m.record("ListComments"); err != nil {
		return nil, err
	}
	return m.comments[assetID], nil
}

var _ Gateway = (*mockGateway)(nil)
