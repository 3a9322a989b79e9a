package pgvector

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// ListRecords loads profile rows for backfill. Nullable text columns are
// coalesced to empty strings so rendering can skip them.
func (s *Store) ListRecords(ctx context.Context) ([]domain.Record, error) {
	const query = `
		SELECT
			id,
			COALESCE(name, ''),
			COALESCE(bio, ''),
			COALESCE(designation, ''),
			COALESCE(company, ''),
			COALESCE(location, ''),
			COALESCE(skills, ''),
			COALESCE(years_of_experience, 0),
			COALESCE(cohort_number, 0),
			COALESCE(is_student, false),
			COALESCE(working_professional, false),
			COALESCE(founder, false),
			COALESCE(open_to_work, false),
			COALESCE(study_stream, ''),
			COALESCE(expected_outcomes, ''),
			COALESCE(track, ''),
			COALESCE(founder_details, ''),
			COALESCE(code_type, ''),
			COALESCE(current_industry, ''),
			COALESCE(domain, ''),
			COALESCE(target_industries, ''),
			COALESCE(industry_interest, ''),
			COALESCE(interest_areas, ''),
			COALESCE(house, '')
		FROM profiles
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var r domain.Record
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Bio,
			&r.Designation,
			&r.Company,
			&r.Location,
			&r.Skills,
			&r.YearsOfExperience,
			&r.CohortNumber,
			&r.IsStudent,
			&r.WorkingProfessional,
			&r.Founder,
			&r.OpenToWork,
			&r.StudyStream,
			&r.ExpectedOutcomes,
			&r.Track,
			&r.FounderDetails,
			&r.CodeType,
			&r.CurrentIndustry,
			&r.Domain,
			&r.TargetIndustries,
			&r.IndustryInterest,
			&r.InterestAreas,
			&r.House,
		)
		if err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}

	return records, nil
}
