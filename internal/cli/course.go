package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// CourseAddOptions holds flags for the course add command.
type CourseAddOptions struct {
	*RootOptions
	Name       string
	Instructor string
	Schedule   string
}

// CourseRow is the JSON shape for one course.
type CourseRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor,omitempty"`
	Schedule   string `json:"schedule,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func courseRow(c store.Course) CourseRow {
	row := CourseRow{
		ID:         c.ID,
		Name:       c.Name,
		Instructor: c.Instructor,
		Schedule:   c.Schedule,
	}
	if !c.CreatedAt.IsZero() {
		row.CreatedAt = c.CreatedAt.Format(timeLayout)
	}
	return row
}

// NewCourseCommand creates the course command group.
func NewCourseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage course offerings",
	}

	cmd.AddCommand(newCourseAddCommand(rootOpts))
	cmd.AddCommand(newCourseListCommand(rootOpts))
	cmd.AddCommand(newCourseDeleteCommand(rootOpts))

	return cmd
}

func newCourseAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CourseAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <course-id>",
		Short: "Add a new course",
		Long: `Add a new course.

Examples:
  rollcall course add CS101 --name "Introduction to Computer Science"
  rollcall course add MATH201 --name "Calculus II" --instructor "Prof. Johnson" --schedule "Tue/Thu 11:00-12:30"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourseAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "course name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.Instructor, "instructor", "", "instructor name")
	cmd.Flags().StringVar(&opts.Schedule, "schedule", "", "meeting schedule, free text")

	return cmd
}

func runCourseAdd(opts *CourseAddOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	in := CourseInput{
		ID:         id,
		Name:       opts.Name,
		Instructor: opts.Instructor,
		Schedule:   opts.Schedule,
	}
	if err := checkInput(in); err != nil {
		return inputFailure(formatter, err)
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	course := store.Course{
		ID:         in.ID,
		Name:       in.Name,
		Instructor: in.Instructor,
		Schedule:   in.Schedule,
	}
	if err := env.st.AddCourse(cmd.Context(), course); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(courseRow(course))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Course %s (%s) added\n", course.ID, course.Name)
	return nil
}

func newCourseListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List all courses",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourseList(rootOpts, cmd)
		},
	}

	return cmd
}

func runCourseList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	courses, err := env.st.Courses(cmd.Context())
	if err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		rows := make([]CourseRow, len(courses))
		for i, c := range courses {
			rows[i] = courseRow(c)
		}
		return outputJSON(cmd.OutOrStdout(), rows)
	}

	w := cmd.OutOrStdout()
	if len(courses) == 0 {
		fmt.Fprintln(w, "No courses defined.")
		return nil
	}

	fmt.Fprintf(w, "%-10s %-36s %-18s %s\n", "ID", "NAME", "INSTRUCTOR", "SCHEDULE")
	for _, c := range courses {
		fmt.Fprintf(w, "%-10s %-36s %-18s %s\n",
			c.ID, c.Name, orDash(c.Instructor), orDash(c.Schedule))
	}
	fmt.Fprintf(w, "\n%d course(s)\n", len(courses))
	return nil
}

func newCourseDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course",
		Long: `Delete a course.

Attendance records that reference the course keep their check-in and
check-out times; only the course reference is cleared.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourseDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCourseDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	course, err := env.st.GetCourse(cmd.Context(), id)
	if err != nil {
		return storeFailure(formatter, err)
	}
	if course == nil {
		return notFound(formatter, "course", id)
	}

	if err := env.st.DeleteCourse(cmd.Context(), id); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(CourseRow{ID: id, Name: course.Name})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Course %s (%s) deleted\n", id, course.Name)
	return nil
}
