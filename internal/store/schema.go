package store

import (
	"context"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	draftsTable    = "drafts"
	revisionsTable = "draft_revisions"
)

// draftsSchema holds the current state of every draft. data is the
// encoded draft document.
func draftsSchema() *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeString, Size: 36}
	return schema.NewTable(draftsTable).
		AddPrimary(id).
		AddColumn(&schema.Column{Name: "code", Type: field.TypeString, Unique: true}).
		AddColumn(&schema.Column{Name: "description", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "format_version", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "revision", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "sections", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "ready", Type: field.TypeBool, Default: false}).
		AddColumn(&schema.Column{Name: "data", Type: field.TypeBytes}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "updated_at", Type: field.TypeInt64})
}

// revisionsSchema is the append-only history of saved drafts.
func revisionsSchema(drafts *schema.Table) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	draftID := &schema.Column{Name: "draft_id", Type: field.TypeString, Size: 36}
	t := schema.NewTable(revisionsTable).
		AddPrimary(id).
		AddColumn(draftID).
		AddColumn(&schema.Column{Name: "revision", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "data", Type: field.TypeBytes}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeInt64}).
		AddIndex("draftrevision_draft_id_revision", true, []string{"draft_id", "revision"})
	t.AddForeignKey(&schema.ForeignKey{
		Symbol:     "draft_revisions_drafts_revisions",
		Columns:    []*schema.Column{draftID},
		RefTable:   drafts,
		RefColumns: []*schema.Column{drafts.PrimaryKey[0]},
		OnDelete:   schema.Cascade,
	})
	return t
}

// Tables returns the store schema in creation order.
func Tables() []*schema.Table {
	drafts := draftsSchema()
	return []*schema.Table{drafts, revisionsSchema(drafts)}
}

// migrate creates or upgrades the schema in place.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	tables := Tables()
	if err := m.Create(ctx, tables...); err != nil {
		return err
	}
	slog.Debug("schema migrated", "tables", len(tables))
	return nil
}
