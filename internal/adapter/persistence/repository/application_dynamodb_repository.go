package repository

import (
	"context"
	"strconv"
	"time"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultApplicationsTableName = "project_applications"
	ApplicationsIDIndex          = "id-index"
	ApplicationsStatusIndex      = "status-index"
)

type applicationItem struct {
	UserID                string                   `dynamodbav:"user_id"`
	ID                    string                   `dynamodbav:"id"`
	Status                string                   `dynamodbav:"status"`
	Form                  entities.ApplicationForm `dynamodbav:"form"`
	RefusalReason         string                   `dynamodbav:"refusal_reason,omitempty"`
	MissingElementsReason string                   `dynamodbav:"missing_elements_reason,omitempty"`
	ReviewerComment       string                   `dynamodbav:"reviewer_comment,omitempty"`
	SignaturePath         string                   `dynamodbav:"signature_path,omitempty"`
	Version               int64                    `dynamodbav:"version"`
	CreatedAt             string                   `dynamodbav:"created_at"`
	UpdatedAt             string                   `dynamodbav:"updated_at"`
	SubmittedAt           string                   `dynamodbav:"submitted_at,omitempty"`
}

// ApplicationDynamoRepository persists Application entities in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - GSI "id-index": PK id
//   - GSI "status-index": PK status, SK created_at
//
// user_id is the PK so the table itself guarantees one application per user.
// Every write bumps version with ADD; workflow writes are conditioned on it.

type ApplicationDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IApplicationRepository = (*ApplicationDynamoRepository)(nil)

func NewApplicationDynamoRepository(ddb DynamoAPI, tableName string) *ApplicationDynamoRepository {
	return &ApplicationDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, DefaultApplicationsTableName),
	}
}

func (r *ApplicationDynamoRepository) GetByUserID(ctx context.Context, userID string) (entities.Application, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": str(userID),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Application{}, err
	}
	if len(out.Item) == 0 {
		return entities.Application{}, nil
	}
	return unmarshalApplication(out.Item)
}

func (r *ApplicationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Application, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ApplicationsIDIndex),
		KeyConditionExpression: aws.String("#id = :id"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": str(id),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Application{}, err
	}
	if len(out.Items) == 0 {
		return entities.Application{}, nil
	}
	// The index is eventually consistent; re-read the base item by its key.
	app, err := unmarshalApplication(out.Items[0])
	if err != nil {
		return entities.Application{}, err
	}
	return r.GetByUserID(ctx, app.UserID)
}

// SaveDraft creates the application on first save and replaces the form
// afterwards, as long as the stored status is still editable.
func (r *ApplicationDynamoRepository) SaveDraft(ctx context.Context, app entities.Application) (entities.Application, error) {
	form, err := attributevalue.Marshal(app.Form)
	if err != nil {
		return entities.Application{}, err
	}
	createdAt := app.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return r.update(ctx, app.UserID, editableCondition(false), func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #id = if_not_exists(#id, :id), #status = if_not_exists(#status, :draft), #form = :form, " +
			"#created_at = if_not_exists(#created_at, :created_at), #updated_at = :updated_at ADD #version :one"
		vals := map[string]types.AttributeValue{
			":id":         str(app.ID),
			":form":       form,
			":created_at": str(formatTime(createdAt)),
			":updated_at": str(now),
			":one":        num(1),
		}
		names := map[string]string{
			"#id":         "id",
			"#form":       "form",
			"#created_at": "created_at",
			"#updated_at": "updated_at",
			"#version":    "version",
		}
		return expr, vals, names
	})
}

func (r *ApplicationDynamoRepository) SetSignature(ctx context.Context, userID string, signaturePath string) (entities.Application, error) {
	return r.update(ctx, userID, editableCondition(true), func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #signature_path = :signature_path, #updated_at = :updated_at ADD #version :one"
		vals := map[string]types.AttributeValue{
			":signature_path": str(signaturePath),
			":updated_at":     str(now),
			":one":            num(1),
		}
		names := map[string]string{
			"#signature_path": "signature_path",
			"#updated_at":     "updated_at",
			"#version":        "version",
		}
		return expr, vals, names
	})
}

// UpdateWorkflow writes the status and the reason fields of next, provided the
// stored version still equals expectedVersion.
func (r *ApplicationDynamoRepository) UpdateWorkflow(ctx context.Context, next entities.Application, expectedVersion int64) (entities.Application, error) {
	cond := condition{
		expr:  "attribute_exists(#user_id) AND attribute_not_exists(#version)",
		names: map[string]string{"#user_id": "user_id", "#version": "version"},
	}
	if expectedVersion > 0 {
		cond.expr = "attribute_exists(#user_id) AND #version = :expected"
		cond.vals = map[string]types.AttributeValue{":expected": num(expectedVersion)}
	}

	return r.update(ctx, next.UserID, cond, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #refusal_reason = :refusal_reason, " +
			"#missing_elements_reason = :missing_elements_reason, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":                  str(string(next.Status)),
			":refusal_reason":          str(next.RefusalReason),
			":missing_elements_reason": str(next.MissingElementsReason),
			":updated_at":              str(now),
			":one":                     num(1),
		}
		names := map[string]string{
			"#status":                  "status",
			"#refusal_reason":          "refusal_reason",
			"#missing_elements_reason": "missing_elements_reason",
			"#updated_at":              "updated_at",
			"#version":                 "version",
		}
		if next.SubmittedAt != nil {
			expr += ", #submitted_at = :submitted_at"
			vals[":submitted_at"] = str(formatTime(*next.SubmittedAt))
			names["#submitted_at"] = "submitted_at"
		}
		return expr + " ADD #version :one", vals, names
	})
}

// UpdateComment leaves version alone so a note never conflicts with a decision.
func (r *ApplicationDynamoRepository) UpdateComment(ctx context.Context, userID string, comment string) (entities.Application, error) {
	cond := condition{
		expr:  "attribute_exists(#user_id)",
		names: map[string]string{"#user_id": "user_id"},
	}
	return r.update(ctx, userID, cond, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #reviewer_comment = :reviewer_comment, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":reviewer_comment": str(comment),
			":updated_at":       str(now),
		}
		names := map[string]string{
			"#reviewer_comment": "reviewer_comment",
			"#updated_at":       "updated_at",
		}
		return expr, vals, names
	})
}

func (r *ApplicationDynamoRepository) ListByStatuses(ctx context.Context, statuses []entities.ApplicationStatus) ([]entities.Application, error) {
	var out []entities.Application
	for _, s := range statuses {
		var startKey map[string]types.AttributeValue
		for {
			page, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
				TableName:              aws.String(r.tableName),
				IndexName:              aws.String(ApplicationsStatusIndex),
				KeyConditionExpression: aws.String("#status = :status"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status": str(string(s)),
				},
				ExclusiveStartKey: startKey,
			})
			if err != nil {
				return nil, err
			}
			apps, err := unmarshalApplications(page.Items)
			if err != nil {
				return nil, err
			}
			out = append(out, apps...)
			if len(page.LastEvaluatedKey) == 0 {
				break
			}
			startKey = page.LastEvaluatedKey
		}
	}
	return out, nil
}

func (r *ApplicationDynamoRepository) ListAll(ctx context.Context) ([]entities.Application, error) {
	var (
		out      []entities.Application
		startKey map[string]types.AttributeValue
	)
	for {
		page, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		apps, err := unmarshalApplications(page.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, apps...)
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		startKey = page.LastEvaluatedKey
	}
}

// condition is a ConditionExpression with the placeholders it uses.
type condition struct {
	expr  string
	names map[string]string
	vals  map[string]types.AttributeValue
}

// editableCondition allows the write while the application is Draft or
// MissingElements. Without mustExist an absent item also passes.
func editableCondition(mustExist bool) condition {
	expr := "attribute_not_exists(#user_id) OR #status IN (:draft, :missing)"
	if mustExist {
		expr = "attribute_exists(#user_id) AND #status IN (:draft, :missing)"
	}
	return condition{
		expr:  expr,
		names: map[string]string{"#user_id": "user_id", "#status": "status"},
		vals: map[string]types.AttributeValue{
			":draft":   str(string(entities.StatusDraft)),
			":missing": str(string(entities.StatusMissingElements)),
		},
	}
}

func (r *ApplicationDynamoRepository) update(
	ctx context.Context,
	userID string,
	cond condition,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Application, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)
	for k, v := range cond.vals {
		values[k] = v
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": str(userID),
		},
		ConditionExpression:       aws.String(cond.expr),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, cond.names),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Application{}, nil
		}
		return entities.Application{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Application{}, nil
	}
	return unmarshalApplication(out.Attributes)
}

func unmarshalApplication(av map[string]types.AttributeValue) (entities.Application, error) {
	var it applicationItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Application{}, err
	}
	return fromApplicationItem(it), nil
}

func unmarshalApplications(items []map[string]types.AttributeValue) ([]entities.Application, error) {
	out := make([]entities.Application, 0, len(items))
	for _, av := range items {
		app, err := unmarshalApplication(av)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, nil
}

func toApplicationItem(a entities.Application) applicationItem {
	it := applicationItem{
		UserID:                a.UserID,
		ID:                    a.ID,
		Status:                string(a.Status),
		Form:                  a.Form,
		RefusalReason:         a.RefusalReason,
		MissingElementsReason: a.MissingElementsReason,
		ReviewerComment:       a.ReviewerComment,
		SignaturePath:         a.SignaturePath,
		Version:               a.Version,
		CreatedAt:             formatTime(a.CreatedAt),
		UpdatedAt:             formatTime(a.UpdatedAt),
	}
	if a.SubmittedAt != nil {
		it.SubmittedAt = formatTime(*a.SubmittedAt)
	}
	return it
}

func fromApplicationItem(it applicationItem) entities.Application {
	a := entities.Application{
		ID:                    it.ID,
		UserID:                it.UserID,
		Status:                entities.ApplicationStatus(it.Status),
		Form:                  it.Form,
		RefusalReason:         it.RefusalReason,
		MissingElementsReason: it.MissingElementsReason,
		ReviewerComment:       it.ReviewerComment,
		SignaturePath:         it.SignaturePath,
		Version:               it.Version,
		CreatedAt:             parseTime(it.CreatedAt),
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
	if it.SubmittedAt != "" {
		t := parseTime(it.SubmittedAt)
		a.SubmittedAt = &t
	}
	return a
}

func num(v int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}
