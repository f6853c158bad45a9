package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
	"github.com/khoahotran/linkedin-crm/pkg/apperror"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	repo        profile.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	if err := EnsureSchema(ctx, pool); err != nil {
		s.T().Fatalf("Failed to apply schema: %s", err)
	}

	s.repo = NewPostgresProfileRepo(s.dbPool, logger.NewZapLogger("development"))
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *ProfileRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), `TRUNCATE profiles RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func sampleProfile(url string) *profile.Profile {
	return &profile.Profile{
		LinkedinURL: url,
		Name:        "Jane Doe",
		Headline:    "Platform Engineer",
		Location:    "Berlin",
		Experience: []profile.Experience{
			{Title: "Engineer", CompanyName: "Acme"},
		},
		Education: []profile.Education{
			{SchoolName: "TU Berlin", DegreeName: "BSc"},
		},
		Skills: []profile.Skill{
			{Name: "Go"}, {Name: "Postgres"},
		},
		Recommendations: []profile.Recommendation{
			{RecommenderName: "John", RecommendationText: "Reliable"},
		},
		Featured: []profile.FeaturedItem{
			{Title: "Conference talk"},
		},
	}
}

func (s *ProfileRepoIntegrationTestSuite) countRows(table string, profileID int64) int {
	var n int
	err := s.dbPool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM `+table+` WHERE profile_id = $1`, profileID).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_And_FindByID() {
	ctx := context.Background()

	id, err := s.repo.Save(ctx, sampleProfile("https://www.linkedin.com/in/janedoe"))
	s.NoError(err)
	s.Greater(id, int64(0))

	found, err := s.repo.FindByID(ctx, id)
	s.NoError(err)
	s.Equal("Jane Doe", found.Name)
	s.Len(found.Experience, 1)
	s.Len(found.Education, 1)
	s.Len(found.Skills, 2)
	s.Len(found.Recommendations, 1)
	s.Len(found.Featured, 1)
	s.WithinDuration(time.Now(), found.UpdatedAt, time.Minute)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_IsIdempotentByURL() {
	ctx := context.Background()
	url := "https://www.linkedin.com/in/janedoe"

	first, err := s.repo.Save(ctx, sampleProfile(url))
	s.NoError(err)

	second, err := s.repo.Save(ctx, sampleProfile(url))
	s.NoError(err)
	s.Equal(first, second, "same URL resolves to same internal id")

	var count int
	s.NoError(s.dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count))
	s.Equal(1, count)

	found, err := s.repo.FindByID(ctx, first)
	s.NoError(err)
	s.Len(found.Skills, 2, "children replaced, not accumulated")
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_UpdatesScalarFields() {
	ctx := context.Background()
	url := "https://www.linkedin.com/in/janedoe"

	id, err := s.repo.Save(ctx, sampleProfile(url))
	s.NoError(err)

	updated := sampleProfile(url)
	updated.Headline = "Staff Engineer"
	updated.Location = "Munich"
	_, err = s.repo.Save(ctx, updated)
	s.NoError(err)

	found, err := s.repo.FindByID(ctx, id)
	s.NoError(err)
	s.Equal("Staff Engineer", found.Headline)
	s.Equal("Munich", found.Location)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_ReplacesChildCollections() {
	ctx := context.Background()
	url := "https://www.linkedin.com/in/janedoe"

	p := sampleProfile(url)
	p.Skills = []profile.Skill{{Name: "Go"}, {Name: "Rust"}, {Name: "Python"}}
	id, err := s.repo.Save(ctx, p)
	s.NoError(err)
	s.Equal(3, s.countRows("skills", id))

	p2 := sampleProfile(url)
	p2.Skills = []profile.Skill{{Name: "Zig"}}
	_, err = s.repo.Save(ctx, p2)
	s.NoError(err)

	s.Equal(1, s.countRows("skills", id))
	found, err := s.repo.FindByID(ctx, id)
	s.NoError(err)
	s.Equal("Zig", found.Skills[0].Name)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_AbsorbsDuplicateSkills() {
	ctx := context.Background()

	p := sampleProfile("https://www.linkedin.com/in/janedoe")
	p.Skills = []profile.Skill{{Name: "Go"}, {Name: "Go"}, {Name: "Rust"}}
	id, err := s.repo.Save(ctx, p)
	s.NoError(err)

	s.Equal(2, s.countRows("skills", id))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_ResolvesParentExperienceForwardReference() {
	ctx := context.Background()

	parentIdx := 1 // forward reference: sub-role listed before its parent
	p := sampleProfile("https://www.linkedin.com/in/janedoe")
	p.Experience = []profile.Experience{
		{Title: "Senior Engineer", CompanyName: "Acme", IsMultiRole: true, ParentIndex: &parentIdx},
		{Title: "Acme roles", CompanyName: "Acme", IsMultiRole: true},
	}
	id, err := s.repo.Save(ctx, p)
	s.NoError(err)

	found, err := s.repo.FindByID(ctx, id)
	s.NoError(err)
	s.Require().Len(found.Experience, 2)
	s.Require().NotNil(found.Experience[0].ParentExperienceID)
	s.Equal(found.Experience[1].ID, *found.Experience[0].ParentExperienceID)
	s.Nil(found.Experience[1].ParentExperienceID)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_RollsBackWhenParentIndexOutOfRange() {
	ctx := context.Background()
	url := "https://www.linkedin.com/in/janedoe"

	// Establish known-good state first.
	id, err := s.repo.Save(ctx, sampleProfile(url))
	s.NoError(err)
	s.Equal(1, s.countRows("experience", id))
	s.Equal(2, s.countRows("skills", id))

	bad := sampleProfile(url)
	bad.Headline = "Should not stick"
	badIdx := 5
	bad.Experience = []profile.Experience{
		{Title: "Engineer", CompanyName: "Acme", ParentIndex: &badIdx},
	}
	bad.Skills = []profile.Skill{{Name: "OnlyOne"}}

	_, err = s.repo.Save(ctx, bad)
	s.Error(err)
	s.ErrorIs(err, apperror.ErrStorage)

	// The failed save happened after child deletion and reinsertion had
	// begun; everything must be back to the previous state.
	found, err := s.repo.FindByID(ctx, id)
	s.NoError(err)
	s.Equal("Platform Engineer", found.Headline)
	s.Equal(1, s.countRows("experience", id))
	s.Equal(2, s.countRows("skills", id))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_FirstTimeFailureLeavesNoRow() {
	ctx := context.Background()

	badIdx := -1
	bad := sampleProfile("https://www.linkedin.com/in/neverexisted")
	bad.Experience = []profile.Experience{
		{Title: "Engineer", CompanyName: "Acme", ParentIndex: &badIdx},
	}

	_, err := s.repo.Save(ctx, bad)
	s.Error(err)

	var count int
	s.NoError(s.dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE linkedin_url = $1`,
		"https://www.linkedin.com/in/neverexisted").Scan(&count))
	s.Equal(0, count, "a failed first-time save creates nothing")
}

func (s *ProfileRepoIntegrationTestSuite) Test_Delete_CascadesToChildren() {
	ctx := context.Background()

	id, err := s.repo.Save(ctx, sampleProfile("https://www.linkedin.com/in/janedoe"))
	s.NoError(err)

	s.NoError(s.repo.Delete(ctx, id))

	for _, table := range []string{"experience", "education", "skills", "recommendations", "featured"} {
		s.Equal(0, s.countRows(table, id), table+" rows must cascade away")
	}
}

func (s *ProfileRepoIntegrationTestSuite) Test_Delete_NotFound() {
	err := s.repo.Delete(context.Background(), 424242)
	s.Error(err)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindByID_NotFound() {
	_, err := s.repo.FindByID(context.Background(), 424242)
	s.Error(err)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindByID_OrdersSkillsByName() {
	ctx := context.Background()

	p := sampleProfile("https://www.linkedin.com/in/janedoe")
	p.Skills = []profile.Skill{{Name: "Rust"}, {Name: "Ansible"}, {Name: "Go"}}
	id, err := s.repo.Save(ctx, p)
	s.NoError(err)

	found, err := s.repo.FindByID(ctx, id)
	s.NoError(err)
	s.Require().Len(found.Skills, 3)
	s.Equal("Ansible", found.Skills[0].Name)
	s.Equal("Go", found.Skills[1].Name)
	s.Equal("Rust", found.Skills[2].Name)
}

func (s *ProfileRepoIntegrationTestSuite) Test_List_NewestFirst() {
	ctx := context.Background()

	_, err := s.repo.Save(ctx, sampleProfile("https://www.linkedin.com/in/older"))
	s.NoError(err)

	// updated_at has full timestamp precision; a tiny gap keeps ordering
	// deterministic.
	time.Sleep(10 * time.Millisecond)

	newerID, err := s.repo.Save(ctx, sampleProfile("https://www.linkedin.com/in/newer"))
	s.NoError(err)

	summaries, err := s.repo.List(ctx)
	s.NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(newerID, summaries[0].ID)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_RefreshesTimestamp() {
	ctx := context.Background()
	url := "https://www.linkedin.com/in/janedoe"

	id, err := s.repo.Save(ctx, sampleProfile(url))
	s.NoError(err)
	first, err := s.repo.FindByID(ctx, id)
	s.NoError(err)

	time.Sleep(10 * time.Millisecond)

	_, err = s.repo.Save(ctx, sampleProfile(url))
	s.NoError(err)
	second, err := s.repo.FindByID(ctx, id)
	s.NoError(err)

	s.True(second.UpdatedAt.After(first.UpdatedAt), "timestamp refreshes on every save")
}
