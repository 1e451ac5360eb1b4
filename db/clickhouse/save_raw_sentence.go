package clickhouse

import (
	"context"
)

const insertRawSentenceQuery = `
	INSERT INTO nmea_raw_sentences (timestamp, session, sentence, checksum_valid)
VALUES (now64(3), ?, ?, ?);
`

// SaveRawSentence saves a received line to clickhouse
func (ndb *NMEADataBase) SaveRawSentence(ctx context.Context, session, sentence string, checksumValid bool) error {
	return ndb.GetConn().Exec(ctx, insertRawSentenceQuery, session, sentence, checksumValid)
}
