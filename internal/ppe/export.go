package ppe

import (
	"context"

	"github.com/delanoso/safetyhub/pkg/auth"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/export"
)

var issueColumns = []export.Column{
	{Header: "Issue Date", Width: 14},
	{Header: "Person", Width: 24},
	{Header: "Employee Number", Width: 18},
	{Header: "Department", Width: 20},
	{Header: "Item", Width: 24},
	{Header: "Category", Width: 16},
	{Header: "Size", Width: 10},
	{Header: "Quantity", Width: 10},
	{Header: "Status", Width: 18},
	{Header: "Signed At", Width: 20},
}

// ExportIssues renders the caller's issue register as a workbook.
func (s *service) ExportIssues(ctx context.Context, actor auth.Actor) ([]byte, error) {
	issues, err := s.ListIssues(ctx, actor)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(issues))
	for _, issue := range issues {
		var person, employeeNumber, department, item, category, signedAt string
		if issue.Person != nil {
			person = issue.Person.Name
			employeeNumber = issue.Person.EmployeeNumber
			department = issue.Person.Department
		}
		if issue.ItemType != nil {
			item = issue.ItemType.Name
			category = issue.ItemType.Category
		}
		if issue.SignedAt != nil {
			signedAt = issue.SignedAt.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, []any{
			issue.IssueDate.String(), person, employeeNumber, department,
			item, category, issue.Size, issue.Quantity, string(issue.Status), signedAt,
		})
	}
	data, err := export.XLSX(export.Sheet{Name: "PPE Issues", Columns: issueColumns, Rows: rows})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build ppe register")
	}
	return data, nil
}
