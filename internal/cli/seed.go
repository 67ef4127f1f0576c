package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// SeedResult is the JSON shape for the seed command.
type SeedResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// sampleCourses is the demo course catalog loaded by seed.
var sampleCourses = []store.Course{
	{ID: "CS101", Name: "Introduction to Computer Science", Instructor: "Dr. Smith", Schedule: "Mon/Wed 9:00-10:30"},
	{ID: "MATH201", Name: "Calculus II", Instructor: "Prof. Johnson", Schedule: "Tue/Thu 11:00-12:30"},
	{ID: "ENG101", Name: "English Composition", Instructor: "Dr. Williams", Schedule: "Mon/Wed 14:00-15:30"},
	{ID: "PHYS101", Name: "Physics I", Instructor: "Prof. Brown", Schedule: "Tue/Thu 13:00-14:30"},
	{ID: "HIST101", Name: "World History", Instructor: "Dr. Davis", Schedule: "Fri 10:00-12:00"},
}

// sampleStudents is the demo roster loaded by seed.
var sampleStudents = []store.Student{
	{ID: "S001", Name: "John Doe", Email: "john.doe@university.edu", Phone: "555-0101", Department: "Computer Science"},
	{ID: "S002", Name: "Jane Smith", Email: "jane.smith@university.edu", Phone: "555-0102", Department: "Mathematics"},
	{ID: "S003", Name: "Bob Johnson", Email: "bob.johnson@university.edu", Phone: "555-0103", Department: "Engineering"},
	{ID: "S004", Name: "Alice Brown", Email: "alice.brown@university.edu", Phone: "555-0104", Department: "Physics"},
	{ID: "S005", Name: "Charlie Wilson", Email: "charlie.wilson@university.edu", Phone: "555-0105", Department: "Computer Science"},
	{ID: "S006", Name: "Diana Davis", Email: "diana.davis@university.edu", Phone: "555-0106", Department: "Mathematics"},
	{ID: "S007", Name: "Edward Miller", Email: "edward.miller@university.edu", Phone: "555-0107", Department: "Engineering"},
	{ID: "S008", Name: "Fiona Garcia", Email: "fiona.garcia@university.edu", Phone: "555-0108", Department: "Physics"},
	{ID: "S009", Name: "George Martinez", Email: "george.martinez@university.edu", Phone: "555-0109", Department: "Computer Science"},
	{ID: "S010", Name: "Helen Taylor", Email: "helen.taylor@university.edu", Phone: "555-0110", Department: "Mathematics"},
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a sample roster and course catalog",
		Long: `Load sample data for trying out the tool: 5 courses and 10
students. Ids that already exist are skipped, so seeding twice is
harmless.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}

	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	added, skipped := 0, 0

	for _, c := range sampleCourses {
		err := env.st.AddCourse(cmd.Context(), c)
		switch {
		case store.IsDuplicate(err):
			skipped++
		case err != nil:
			return storeFailure(formatter, err)
		default:
			added++
		}
	}

	for _, s := range sampleStudents {
		err := env.st.AddStudent(cmd.Context(), s)
		switch {
		case store.IsDuplicate(err):
			skipped++
		case err != nil:
			return storeFailure(formatter, err)
		default:
			added++
		}
	}

	if opts.Format == "json" {
		return formatter.Success(SeedResult{Added: added, Skipped: skipped})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d record(s), %d already present\n", added, skipped)
	return nil
}
