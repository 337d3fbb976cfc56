package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"youtube-stats/models"
)

// tablePrefix names generated tables, e.g. YouTube_stats_08082023060000.
const tablePrefix = "YouTube_stats_"

var bqFieldTypes = map[models.ColumnType]bigquery.FieldType{
	models.TypeString:    bigquery.StringFieldType,
	models.TypeInteger:   bigquery.IntegerFieldType,
	models.TypeFloat:     bigquery.FloatFieldType,
	models.TypeTimestamp: bigquery.TimestampFieldType,
}

// BigQueryOptions select the destination table.
type BigQueryOptions struct {
	Project         string
	Dataset         string
	Table           string
	CredentialsFile string
}

// BigQueryLoader loads datasets into BigQuery with a truncating load job.
type BigQueryLoader struct {
	client  *bigquery.Client
	project string
	dataset string
	table   string
	now     func() time.Time

	// lastTable is the table the most recent Load wrote to.
	lastTable string
}

// NewBigQueryLoader creates a BigQuery client for the project. Without a credentials
// file the application default credentials are used.
func NewBigQueryLoader(ctx context.Context, opts BigQueryOptions) (*BigQueryLoader, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	client, err := bigquery.NewClient(ctx, opts.Project, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "bigquery: create client")
	}
	return &BigQueryLoader{
		client:  client,
		project: opts.Project,
		dataset: opts.Dataset,
		table:   opts.Table,
		now:     time.Now,
	}, nil
}

// Load runs a load job that replaces the destination table and waits for it.
func (b *BigQueryLoader) Load(ctx context.Context, ds *models.Dataset) error {
	body, err := encodeNDJSON(ds)
	if err != nil {
		return err
	}

	tableID := b.resolveTable()
	src := bigquery.NewReaderSource(bytes.NewReader(body))
	src.SourceFormat = bigquery.JSON
	src.Schema = bigQuerySchema()

	loader := b.client.Dataset(b.dataset).Table(tableID).LoaderFrom(src)
	loader.WriteDisposition = bigquery.WriteTruncate
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return errors.Wrapf(err, "bigquery: start load into %s", tableID)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return errors.Wrapf(err, "bigquery: wait for job %s", job.ID())
	}
	if err := status.Err(); err != nil {
		return errors.Wrapf(err, "bigquery: job %s failed", job.ID())
	}
	return nil
}

// tableID returns the configured table, or a name stamped with the current time.
func (b *BigQueryLoader) tableID() string {
	if b.table != "" {
		return b.table
	}
	return timestampedTable(b.now())
}

// resolveTable fixes the table name for one load and records it for Destination.
func (b *BigQueryLoader) resolveTable() string {
	b.lastTable = b.tableID()
	return b.lastTable
}

func timestampedTable(t time.Time) string {
	return tablePrefix + t.Format("02012006150405")
}

func bigQuerySchema() bigquery.Schema {
	schema := make(bigquery.Schema, len(models.Schema))
	for i, col := range models.Schema {
		schema[i] = &bigquery.FieldSchema{
			Name:     col.Name,
			Type:     bqFieldTypes[col.Type],
			Required: col.Name == models.ColVideoID || col.Name == models.ColChannelID,
		}
	}
	return schema
}

// encodeNDJSON renders one JSON object per row keyed by column name.
func encodeNDJSON(ds *models.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, row := range ds.Rows {
		obj := make(map[string]any, len(ds.Columns))
		for j, col := range ds.Columns {
			if j >= len(row) {
				break
			}
			if ts, ok := row[j].(time.Time); ok {
				obj[col] = ts.UTC().Format(time.RFC3339)
				continue
			}
			obj[col] = row[j]
		}
		if err := enc.Encode(obj); err != nil {
			return nil, errors.Wrapf(err, "bigquery: encode row %d", i)
		}
	}
	return buf.Bytes(), nil
}

// Destination names the table of the last Load. Before any load it names the
// configured table, or the table prefix when names are generated per load.
func (b *BigQueryLoader) Destination() string {
	table := b.lastTable
	if table == "" {
		table = b.table
	}
	if table == "" {
		table = tablePrefix + "<timestamp>"
	}
	return "bigquery:" + b.project + "." + b.dataset + "." + table
}

func (b *BigQueryLoader) Close() error {
	return b.client.Close()
}
