package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Method string
	Course string
}

// RecordResult is the JSON shape for one attendance action.
type RecordResult struct {
	StudentID string `json:"student_id"`
	Outcome   string `json:"outcome"` // "created" or "toggled"
	Method    string `json:"method"`
	Course    string `json:"course,omitempty"`
	TimeIn    string `json:"time_in,omitempty"`
	TimeOut   string `json:"time_out,omitempty"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <student-id>",
		Short: "Record a check-in or check-out",
		Long: `Record attendance for a student.

The first record of the day checks the student in; a second record on
the same day stamps their check-out time. Records after that restamp
the check-out.

When --method is omitted the configured default method is used. The
student id does not have to belong to a registered student, so badge
scans keep working while enrollment lags behind.

Examples:
  rollcall record S001
  rollcall record S001 --method manual
  rollcall record S001 --course CS101`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Method, "method", "", "verification method (id_pass|manual, default from config)")
	cmd.Flags().StringVar(&opts.Course, "course", "", "course id to file the attendance under")

	return cmd
}

func runRecord(opts *RecordOptions, studentID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	method := opts.Method
	if method == "" {
		method = env.cfg.Attendance.DefaultMethod
	}

	in := RecordInput{StudentID: studentID, Method: method, CourseID: opts.Course}
	if err := checkInput(in); err != nil {
		return inputFailure(formatter, err)
	}

	if in.CourseID != "" {
		course, err := env.st.GetCourse(cmd.Context(), in.CourseID)
		if err != nil {
			return storeFailure(formatter, err)
		}
		if course == nil {
			return notFound(formatter, "course", in.CourseID)
		}
	}

	outcome, err := env.st.RecordAttendance(cmd.Context(), in.StudentID, in.Method, in.CourseID)
	if err != nil {
		return storeFailure(formatter, err)
	}

	record, err := env.st.AttendanceFor(cmd.Context(), in.StudentID, time.Now().Format(dayLayout))
	if err != nil {
		return storeFailure(formatter, err)
	}

	result := RecordResult{
		StudentID: in.StudentID,
		Outcome:   outcome.String(),
		Method:    in.Method,
	}
	if record != nil {
		result.Course = record.CourseID
		result.TimeIn = record.TimeIn.Format(timeLayout)
		if record.TimeOut != nil {
			result.TimeOut = record.TimeOut.Format(timeLayout)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	switch outcome {
	case store.OutcomeCreated:
		fmt.Fprintf(w, "Checked in %s at %s\n", in.StudentID, result.TimeIn)
	case store.OutcomeToggled:
		fmt.Fprintf(w, "Checked out %s at %s\n", in.StudentID, result.TimeOut)
	}
	return nil
}
