package seeder

import (
	"context"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmployerEmail    = "employer@example.com"
	DemoEmployerPassword = "employer123"
)

type sampleJob struct {
	Title        string
	Description  string
	Requirements []string
	Location     string
	Type         job.Type
	WorkMode     job.WorkMode
	Salary       string
}

var sampleJobs = []sampleJob{
	{
		Title:        "Junior Software Engineer",
		Description:  "We are looking for a junior software engineer to join our growing team. You will work on full-stack applications using modern technologies.",
		Requirements: []string{"JavaScript/TypeScript", "React or Vue", "Node.js", "SQL basics", "Git"},
		Location:     "San Francisco, CA",
		Type:         job.TypeEntryLevel,
		WorkMode:     job.WorkModeHybrid,
		Salary:       "$80,000 - $100,000",
	},
	{
		Title:        "Frontend Internship",
		Description:  "Join our design team for a summer internship building beautiful user interfaces. Perfect for students looking to gain real-world experience.",
		Requirements: []string{"HTML/CSS", "JavaScript", "Basic React knowledge", "Design sense"},
		Location:     "New York, NY",
		Type:         job.TypeInternship,
		WorkMode:     job.WorkModeOnsite,
		Salary:       "$20/hour",
	},
	{
		Title:        "Data Science Internship",
		Description:  "Work with our data team on real-world machine learning projects. Gain hands-on experience with Python, SQL, and ML frameworks.",
		Requirements: []string{"Python", "SQL", "Statistics", "Machine Learning basics"},
		Location:     "Remote",
		Type:         job.TypeInternship,
		WorkMode:     job.WorkModeRemote,
		Salary:       "$22/hour",
	},
	{
		Title:        "Backend Developer",
		Description:  "Build scalable backend systems for our SaaS platform. Experience with microservices, cloud infrastructure, and distributed systems required.",
		Requirements: []string{"Node.js/Python/Go", "PostgreSQL/MongoDB", "Docker", "AWS/GCP", "REST APIs"},
		Location:     "Seattle, WA",
		Type:         job.TypeEntryLevel,
		WorkMode:     job.WorkModeRemote,
		Salary:       "$90,000 - $120,000",
	},
	{
		Title:        "Product Designer Internship",
		Description:  "Design user experiences for our mobile app. Learn design thinking, prototyping, and user research in a collaborative environment.",
		Requirements: []string{"Figma", "Design principles", "Prototyping", "UI/UX basics"},
		Location:     "Austin, TX",
		Type:         job.TypeInternship,
		WorkMode:     job.WorkModeHybrid,
		Salary:       "$18/hour",
	},
}

// EmployerSeeder creates TechCorp and its five postings. It does nothing when
// the demo employer already exists.
type EmployerSeeder struct{}

func (EmployerSeeder) Name() string { return "demo_employer" }

func (EmployerSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "employer_profiles", "id", "user_id", "company_name", "logo_url"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "employer_id", "requirements", "is_active"); err != nil {
		return err
	}

	return repository.NewPostgresStore(db).WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		exists, err := repos.Users().ExistsByEmail(ctx, DemoEmployerEmail)
		if err != nil || exists {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DemoEmployerPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		u := user.User{ID: uuid.New(), Email: DemoEmployerEmail, PasswordHash: string(hash), Role: user.RoleEmployer}
		if err := repos.Users().Create(ctx, u); err != nil {
			return err
		}

		p := user.EmployerProfile{
			ID:          uuid.New(),
			UserID:      u.ID,
			CompanyName: "TechCorp",
			Industry:    ptr("Technology"),
			CompanySize: ptr("100-500"),
			Website:     ptr("https://techcorp.example.com"),
			Description: ptr("Leading technology company building innovative solutions for the future."),
			LogoURL:     ptr("https://via.placeholder.com/150?text=TechCorp"),
		}
		if err := repos.Users().CreateEmployerProfile(ctx, p); err != nil {
			return err
		}

		for _, s := range sampleJobs {
			if err := repos.Jobs().Create(ctx, job.Job{
				ID:           uuid.New(),
				EmployerID:   p.ID,
				Title:        s.Title,
				Description:  s.Description,
				Requirements: s.Requirements,
				Location:     s.Location,
				Type:         s.Type,
				WorkMode:     s.WorkMode,
				Salary:       ptr(s.Salary),
				IsActive:     true,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func ptr[T any](v T) *T {
	return &v
}
