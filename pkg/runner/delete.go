package runner

import (
	"context"
	"fmt"
	"io"

	"stitchgrid/pkg/store"
)

type Delete struct {
	Store *store.Store
	Ref   string
	Out   io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	if d.Store == nil {
		return fmt.Errorf("can not delete: %w", errNoStore)
	}
	p, err := d.Store.Find(ctx, d.Ref)
	if err != nil {
		return err
	}
	if err := d.Store.Delete(ctx, p.ID); err != nil {
		return err
	}
	_, _ = success.Fprintf(output(d.Out), "Deleted %s\n", p.Name)
	return nil
}
