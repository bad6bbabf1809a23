package quote

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/quoted/internal/common/clock/mocks"
	"github.com/KirkDiggler/quoted/internal/common/uuid"
	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/random"
	quoteRepo "github.com/KirkDiggler/quoted/internal/repositories/quote"
	tenantRepo "github.com/KirkDiggler/quoted/internal/repositories/tenant"
	"github.com/KirkDiggler/quoted/internal/services/token"
	"github.com/KirkDiggler/quoted/internal/services/visibility"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// scriptedGenerator hands out tokens in order, ignoring the exists check
type scriptedGenerator struct {
	tokens []string
	calls  int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ *token.GenerateInput) (string, error) {
	if g.calls >= len(g.tokens) {
		return "", token.ErrExhausted
	}
	tok := g.tokens[g.calls]
	g.calls++
	return tok, nil
}

type QuoteServiceTestSuite struct {
	suite.Suite
	mr         *miniredis.Miniredis
	client     *redis.Client
	mockCtrl   *gomock.Controller
	mockClock  *clockMocks.MockClock
	tenantRepo tenantRepo.Repository
	quoteRepo  quoteRepo.Repository
	visibility visibility.Service
	service    Service
	ctx        context.Context
	testTime   time.Time
}

func (s *QuoteServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.testTime = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	tenants, err := tenantRepo.NewRedis(&tenantRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.tenantRepo = tenants

	quotes, err := quoteRepo.NewRedis(&quoteRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.quoteRepo = quotes

	resolver, err := visibility.New(&visibility.Config{TenantRepo: tenants})
	s.Require().NoError(err)
	s.visibility = resolver

	s.service = s.newService(nil)
}

func (s *QuoteServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}

func (s *QuoteServiceTestSuite) newService(generator token.Generator) Service {
	rnd := random.New(&random.Config{Seed: 42})
	if generator == nil {
		g, err := token.New(&token.Config{Random: rnd})
		s.Require().NoError(err)
		generator = g
	}

	svc, err := New(&Config{
		QuoteRepo:      s.quoteRepo,
		Visibility:     s.visibility,
		TokenGenerator: generator,
		Random:         rnd,
		Clock:          s.mockClock,
		UUIDGenerator:  uuid.New(),
	})
	s.Require().NoError(err)
	return svc
}

func (s *QuoteServiceTestSuite) saveTenant(id string, privacy models.Privacy, following ...string) {
	s.Require().NoError(s.tenantRepo.SaveTenant(s.ctx, &tenantRepo.SaveTenantInput{
		Tenant: &models.Tenant{
			ID:        id,
			Kind:      models.TenantKindGuild,
			Name:      id,
			Privacy:   privacy,
			CreatedAt: s.testTime,
			UpdatedAt: s.testTime,
		},
	}))
	for _, target := range following {
		s.Require().NoError(s.tenantRepo.AddFollow(s.ctx, &tenantRepo.AddFollowInput{
			TenantID: id,
			TargetID: target,
		}))
	}
}

func (s *QuoteServiceTestSuite) create(tenantID string, statements []string, authors ...string) *models.Quote {
	input := &CreateQuoteInput{
		TenantID:   tenantID,
		CreatorID:  "creator",
		Statements: statements,
	}
	for _, name := range authors {
		input.Authors = append(input.Authors, &models.Author{Name: name})
	}

	output, err := s.service.CreateQuote(s.ctx, input)
	s.Require().NoError(err)
	return output.Quote
}

func (s *QuoteServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilQuoteRepo)

	_, err = New(&Config{QuoteRepo: s.quoteRepo})
	s.ErrorIs(err, ErrNilVisibility)
}

func (s *QuoteServiceTestSuite) TestCreateQuote() {
	output, err := s.service.CreateQuote(s.ctx, &CreateQuoteInput{
		TenantID:   "guild-1",
		CreatorID:  "user-1",
		Statements: []string{"  I'll be back  ", " "},
		Authors: []*models.Author{
			{Name: " Arnold ", Aliases: []string{"Arnie", ""}},
			nil,
		},
		Context: " set ",
	})
	s.Require().NoError(err)

	q := output.Quote
	s.NotEmpty(q.ID)
	s.Len(q.Token, token.DefaultLength)
	s.Equal([]string{"I'll be back"}, q.Statements)
	s.Require().Len(q.Authors, 1)
	s.Equal("Arnold", q.Authors[0].Name)
	s.Equal([]string{"Arnie"}, q.Authors[0].Aliases)
	s.Equal("set", q.Context)
	s.Equal(s.testTime, q.CreatedAt)

	stored, err := s.quoteRepo.GetQuote(s.ctx, &quoteRepo.GetQuoteInput{QuoteID: q.ID})
	s.Require().NoError(err)
	s.Equal(q.Token, stored.Token)
}

func (s *QuoteServiceTestSuite) TestCreateQuoteValidation() {
	_, err := s.service.CreateQuote(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.service.CreateQuote(s.ctx, &CreateQuoteInput{
		TenantID:   "guild-1",
		Statements: []string{"", "  "},
		Authors:    []*models.Author{{Name: "Alice"}},
	})
	s.ErrorIs(err, ErrEmptyStatements)

	_, err = s.service.CreateQuote(s.ctx, &CreateQuoteInput{
		TenantID:   "guild-1",
		Statements: []string{"hello"},
		Authors:    []*models.Author{{Name: " "}},
	})
	s.ErrorIs(err, ErrMissingAuthor)
}

func (s *QuoteServiceTestSuite) TestCreateQuoteRetriesTakenToken() {
	s.service = s.newService(&scriptedGenerator{tokens: []string{"first1"}})
	s.create("guild-1", []string{"one"}, "Alice")

	generator := &scriptedGenerator{tokens: []string{"first1", "second"}}
	s.service = s.newService(generator)

	q := s.create("guild-1", []string{"two"}, "Bob")
	s.Equal("second", q.Token)
	s.Equal(2, generator.calls)
}

func (s *QuoteServiceTestSuite) TestCreateQuoteGivesUpAfterRepeatedCollisions() {
	s.service = s.newService(&scriptedGenerator{tokens: []string{"taken1"}})
	s.create("guild-1", []string{"one"}, "Alice")

	s.service = s.newService(&scriptedGenerator{tokens: []string{"taken1", "taken1", "taken1", "free01"}})
	_, err := s.service.CreateQuote(s.ctx, &CreateQuoteInput{
		TenantID:   "guild-1",
		Statements: []string{"two"},
		Authors:    []*models.Author{{Name: "Bob"}},
	})
	s.ErrorIs(err, ErrTokenExhausted)
}

func (s *QuoteServiceTestSuite) TestSampleNeverReturnsConversations() {
	single := s.create("guild-1", []string{"solo"}, "Alice")
	s.create("guild-1", []string{"a", "b"}, "Alice", "Bob")

	for i := 0; i < 20; i++ {
		output, err := s.service.SampleRandomExcluding(s.ctx, &SampleRandomExcludingInput{TenantID: "guild-1"})
		s.Require().NoError(err)
		s.Require().NotNil(output.Quote)
		s.Equal(single.ID, output.Quote.ID)
	}
}

func (s *QuoteServiceTestSuite) TestSampleExcludesUntilEmpty() {
	created := map[string]bool{}
	for _, text := range []string{"one", "two", "three"} {
		created[s.create("guild-1", []string{text}, "Alice").ID] = true
	}

	var used []string
	for i := 0; i < 3; i++ {
		output, err := s.service.SampleRandomExcluding(s.ctx, &SampleRandomExcludingInput{
			TenantID:   "guild-1",
			ExcludeIDs: used,
		})
		s.Require().NoError(err)
		s.Require().NotNil(output.Quote)
		s.True(created[output.Quote.ID])
		s.NotContains(used, output.Quote.ID)
		used = append(used, output.Quote.ID)
	}

	output, err := s.service.SampleRandomExcluding(s.ctx, &SampleRandomExcludingInput{
		TenantID:   "guild-1",
		ExcludeIDs: used,
	})
	s.Require().NoError(err)
	s.Nil(output.Quote)
}

func (s *QuoteServiceTestSuite) TestSampleEmptyCorpus() {
	output, err := s.service.SampleRandomExcluding(s.ctx, &SampleRandomExcludingInput{TenantID: "nobody"})
	s.Require().NoError(err)
	s.Nil(output.Quote)
}

func (s *QuoteServiceTestSuite) TestSampleCoversEveryQuote() {
	seen := map[string]int{}
	for _, text := range []string{"one", "two", "three"} {
		seen[s.create("guild-1", []string{text}, "Alice").ID] = 0
	}

	for i := 0; i < 300; i++ {
		output, err := s.service.SampleRandomExcluding(s.ctx, &SampleRandomExcludingInput{TenantID: "guild-1"})
		s.Require().NoError(err)
		seen[output.Quote.ID]++
	}

	s.Len(seen, 3)
	for id, count := range seen {
		s.Greater(count, 50, "quote %s drawn too rarely", id)
	}
}

func (s *QuoteServiceTestSuite) TestSampleSkipsDanglingIndexEntry() {
	q := s.create("guild-1", []string{"one"}, "Alice")
	s.mr.SAdd("tenant_single_quotes:guild-1", "ghost")

	for i := 0; i < 10; i++ {
		output, err := s.service.SampleRandomExcluding(s.ctx, &SampleRandomExcludingInput{TenantID: "guild-1"})
		s.Require().NoError(err)
		s.Require().NotNil(output.Quote)
		s.Equal(q.ID, output.Quote.ID)
	}
}

func (s *QuoteServiceTestSuite) TestVisibilityGatesAccess() {
	s.saveTenant("a", models.PrivacyPublic, "b", "c", "d")
	s.saveTenant("b", models.PrivacyPublic)
	s.saveTenant("c", models.PrivacyPrivate)
	s.saveTenant("d", models.PrivacyTwoWay)

	own := s.create("a", []string{"from a"}, "Alice")
	public := s.create("b", []string{"from b"}, "Bob")
	s.create("c", []string{"from c"}, "Carol")
	s.create("d", []string{"from d"}, "Dan")

	output, err := s.service.ListAccessible(s.ctx, &ListAccessibleInput{TenantID: "a"})
	s.Require().NoError(err)

	ids := make([]string, 0, len(output.Quotes))
	for _, q := range output.Quotes {
		ids = append(ids, q.ID)
	}
	s.ElementsMatch([]string{own.ID, public.ID}, ids)

	// d follows back, so its two-way gate opens
	s.Require().NoError(s.tenantRepo.AddFollow(s.ctx, &tenantRepo.AddFollowInput{TenantID: "d", TargetID: "a"}))

	output, err = s.service.ListAccessible(s.ctx, &ListAccessibleInput{TenantID: "a"})
	s.Require().NoError(err)
	s.Len(output.Quotes, 3)
}

func (s *QuoteServiceTestSuite) TestDistinctAuthorNames() {
	s.saveTenant("a", models.PrivacyPublic, "b")
	s.saveTenant("b", models.PrivacyPublic)

	s.create("a", []string{"one"}, "Alice")
	s.create("a", []string{"two"}, "Bob")
	s.create("b", []string{"three"}, "alice")
	s.create("b", []string{"four"}, "Carol")
	s.create("c", []string{"five"}, "Zed")

	output, err := s.service.DistinctAuthorNames(s.ctx, &DistinctAuthorNamesInput{
		TenantID:  "a",
		Excluding: "BOB",
	})
	s.Require().NoError(err)
	s.Equal([]string{"Alice", "Carol"}, output.Names)
}

func (s *QuoteServiceTestSuite) TestSearch() {
	s.create("guild-1", []string{"The cake is a lie"}, "GLaDOS")
	s.create("guild-1", []string{"Stay a while and listen"}, "Deckard Cain")
	s.create("guild-1", []string{"Hello"}, "Someone")
	s.create("other", []string{"cake for everyone"}, "Hidden")

	output, err := s.service.Search(s.ctx, &SearchInput{TenantID: "guild-1", Query: "CAKE"})
	s.Require().NoError(err)
	s.Require().Len(output.Quotes, 1)
	s.Equal("GLaDOS", output.Quotes[0].Authors[0].Name)

	output, err = s.service.Search(s.ctx, &SearchInput{TenantID: "guild-1", Query: "cain"})
	s.Require().NoError(err)
	s.Len(output.Quotes, 1)

	output, err = s.service.Search(s.ctx, &SearchInput{TenantID: "guild-1", Query: "a", Limit: 1})
	s.Require().NoError(err)
	s.Len(output.Quotes, 1)

	_, err = s.service.Search(s.ctx, &SearchInput{TenantID: "guild-1", Query: "  "})
	s.ErrorIs(err, ErrInvalidInput)
}
