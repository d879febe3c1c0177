package reader

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

// ChannelInfo describes one DAQ channel as registered in the instrument
// database: the SURF slot digitizing it and the antenna it serves.
type ChannelInfo struct {
	Channel int    `db:"Channel"`
	Surf    int    `db:"Surf"`
	Antenna string `db:"Antenna"`
}

type ChannelMap map[int32]ChannelInfo

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// GetChannelMapFromDB reads the channel mapping valid for the given run.
func GetChannelMapFromDB(db *sqlx.DB, runNumber int) (ChannelMap, error) {
	query := "SELECT Channel, Surf, Antenna FROM ChannelMapping WHERE MinRun <= %d and MaxRun >= %d ORDER BY Channel"
	query = fmt.Sprintf(query, runNumber, runNumber)

	logInfo("Channel mapping read from DB", "database")

	rows, err := db.Queryx(query)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}

	channels := make(ChannelMap)
	for rows.Next() {
		result := ChannelInfo{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		channels[int32(result.Channel)] = result
	}
	return channels, nil
}
