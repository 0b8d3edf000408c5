package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/remotework/jobnexus/internal/adapter/extractclient"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/jobform"
	"go.uber.org/zap"
)

type runOptions struct {
	URL      string
	Endpoint string
	Timeout  time.Duration
	Paste    bool
	Submit   bool
	Sets     []string
}

func run(ctx context.Context, opts runOptions, out io.Writer, log *zap.Logger) error {
	client := extractclient.New(opts.Endpoint, extractclient.WithTimeout(opts.Timeout), extractclient.WithLogger(log))

	form := jobform.NewMemoryForm()
	ctrl, err := jobform.NewController(form.Form(), client,
		jobform.WithRequestTimeout(opts.Timeout),
		jobform.WithLogger(log),
	)
	if err != nil {
		return err
	}
	ctrl.On(jobform.EventResultReceived, func(_ jobform.Event, p jobform.Payload) {
		log.Debug("extraction finished", zap.String("url", p.URL), zap.Error(p.Err))
	})

	if opts.URL != "" {
		form.URL.Set(opts.URL)
		var outcome jobform.Outcome
		if opts.Paste {
			outcome = ctrl.HandlePaste(ctx)
		} else {
			outcome = ctrl.Extract(ctx)
		}
		log.Debug("extraction outcome", zap.Stringer("outcome", outcome))
		if msg, ok := form.Status.Last(); ok {
			fmt.Fprintf(out, "[%s] %s\n", msg.Kind, msg.Message)
		}
	}

	if err := applyOverrides(ctrl, form, opts.Sets); err != nil {
		return err
	}
	printForm(out, form)

	state := ctrl.ValidateSubmission()
	if !state.Valid {
		fmt.Fprintf(out, "[%s] %s: %s\n", jobform.StatusError, jobform.MsgRequired, strings.Join(state.Invalid, ", "))
		if opts.Submit {
			return state.Err()
		}
		return nil
	}
	if !opts.Submit {
		return nil
	}

	created, err := client.CreateJob(ctx, jobFromForm(form))
	if err != nil {
		return fmt.Errorf("posting job: %w", err)
	}
	fmt.Fprintf(out, "Posted job #%d: %s at %s\n", created.ID, created.Title, created.Company)
	return nil
}

// applyOverrides sets name=value pairs on the form as if typed by hand.
func applyOverrides(ctrl *jobform.Controller, form *jobform.MemoryForm, sets []string) error {
	fields := form.Form().Fields
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		binding := fields[name]
		if !ok || binding == nil {
			return fmt.Errorf("invalid --set %q: want name=value with name one of %s", kv, strings.Join(entity.RecognizedFields, ", "))
		}
		binding.Set(value)
		ctrl.HandleInput(name)
	}
	return nil
}

func printForm(out io.Writer, form *jobform.MemoryForm) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	values := form.Values()
	for _, name := range entity.RecognizedFields {
		value := values[name]
		if r := []rune(value); len(r) > 60 {
			value = string(r[:57]) + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, strings.ReplaceAll(value, "\n", " "))
	}
	tw.Flush()
}

func jobFromForm(form *jobform.MemoryForm) *entity.Job {
	v := form.Values()
	return &entity.Job{
		Title:          v[entity.FieldTitle],
		Company:        v[entity.FieldCompany],
		Location:       v[entity.FieldLocation],
		Description:    v[entity.FieldDescription],
		Requirements:   v[entity.FieldRequirements],
		SalaryRange:    v[entity.FieldSalaryRange],
		JobType:        v[entity.FieldJobType],
		ApplicationURL: v[entity.FieldApplicationURL],
		SourceURL:      v[entity.FieldSourceURL],
	}
}
