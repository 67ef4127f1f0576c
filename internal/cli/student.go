package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// StudentAddOptions holds flags for the student add command.
type StudentAddOptions struct {
	*RootOptions
	Name       string
	Email      string
	Phone      string
	Department string
}

// StudentRow is the JSON shape for one student.
type StudentRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func studentRow(s store.Student) StudentRow {
	row := StudentRow{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Department: s.Department,
	}
	if !s.CreatedAt.IsZero() {
		row.CreatedAt = s.CreatedAt.Format(timeLayout)
	}
	return row
}

// NewStudentCommand creates the student command group.
func NewStudentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage enrolled students",
	}

	cmd.AddCommand(newStudentAddCommand(rootOpts))
	cmd.AddCommand(newStudentListCommand(rootOpts))
	cmd.AddCommand(newStudentShowCommand(rootOpts))
	cmd.AddCommand(newStudentDeleteCommand(rootOpts))

	return cmd
}

func newStudentAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudentAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <student-id>",
		Short: "Register a new student",
		Long: `Register a new student.

The student id is the key attendance records are filed under. Email,
phone and department are optional.

Examples:
  rollcall student add S011 --name "Ada Lovelace"
  rollcall student add S012 --name "Alan Turing" --email alan.turing@university.edu --department "Computer Science"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "full name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.Department, "department", "", "department name")

	return cmd
}

func runStudentAdd(opts *StudentAddOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	in := StudentInput{
		ID:         id,
		Name:       opts.Name,
		Email:      opts.Email,
		Phone:      opts.Phone,
		Department: opts.Department,
	}
	if err := checkInput(in); err != nil {
		return inputFailure(formatter, err)
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	student := store.Student{
		ID:         in.ID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Department: in.Department,
	}
	if err := env.st.AddStudent(cmd.Context(), student); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(studentRow(student))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Student %s (%s) registered\n", student.ID, student.Name)
	return nil
}

func newStudentListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List all students",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentList(rootOpts, cmd)
		},
	}

	return cmd
}

func runStudentList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	students, err := env.st.Students(cmd.Context())
	if err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		rows := make([]StudentRow, len(students))
		for i, s := range students {
			rows[i] = studentRow(s)
		}
		return outputJSON(cmd.OutOrStdout(), rows)
	}

	w := cmd.OutOrStdout()
	if len(students) == 0 {
		fmt.Fprintln(w, "No students registered.")
		return nil
	}

	fmt.Fprintf(w, "%-10s %-24s %-30s %-14s %s\n", "ID", "NAME", "EMAIL", "PHONE", "DEPARTMENT")
	for _, s := range students {
		fmt.Fprintf(w, "%-10s %-24s %-30s %-14s %s\n",
			s.ID, s.Name, orDash(s.Email), orDash(s.Phone), orDash(s.Department))
	}
	fmt.Fprintf(w, "\n%d student(s)\n", len(students))
	return nil
}

func newStudentShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <student-id>",
		Short:         "Show one student",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runStudentShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	student, err := env.st.GetStudent(cmd.Context(), id)
	if err != nil {
		return storeFailure(formatter, err)
	}
	if student == nil {
		return notFound(formatter, "student", id)
	}

	if opts.Format == "json" {
		return formatter.Success(studentRow(*student))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Student: %s\n", student.ID)
	fmt.Fprintf(w, "  Name:       %s\n", student.Name)
	fmt.Fprintf(w, "  Email:      %s\n", orDash(student.Email))
	fmt.Fprintf(w, "  Phone:      %s\n", orDash(student.Phone))
	fmt.Fprintf(w, "  Department: %s\n", orDash(student.Department))
	fmt.Fprintf(w, "  Created:    %s\n", student.CreatedAt.Format(timeLayout))
	return nil
}

func newStudentDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <student-id>",
		Short: "Delete a student and their attendance history",
		Long: `Delete a student.

The student's attendance and course attendance rows are removed in the
same transaction.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runStudentDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	student, err := env.st.GetStudent(cmd.Context(), id)
	if err != nil {
		return storeFailure(formatter, err)
	}
	if student == nil {
		return notFound(formatter, "student", id)
	}

	if err := env.st.DeleteStudent(cmd.Context(), id); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(StudentRow{ID: id, Name: student.Name})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Student %s (%s) deleted\n", id, student.Name)
	return nil
}
