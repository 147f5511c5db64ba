package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

const collectionProjects = "projects"

// ProjectRepository is the MongoDB implementation of ports.ProjectRepository.
// All mutations are single-document updates; the driver's per-document
// atomicity is the only concurrency control.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type attachmentDoc struct {
	Filename     string    `bson:"filename"`
	OriginalName string    `bson:"originalname"`
	MimeType     string    `bson:"mimetype"`
	Size         int64     `bson:"size"`
	URL          string    `bson:"url"`
	UploadedAt   time.Time `bson:"uploaded_at"`
}

type projectDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"project_name"`
	Deadline    time.Time            `bson:"project_deadline,omitempty"`
	Revenue     float64              `bson:"revenue"`
	AssignedTo  []primitive.ObjectID `bson:"assigned_to"`
	AssignedBy  primitive.ObjectID   `bson:"assigned_by,omitempty"`
	Remark      string               `bson:"remark,omitempty"`
	MeetingLink string               `bson:"meeting_link,omitempty"`
	Client      *domain.Client       `bson:"client,omitempty"`
	Status      string               `bson:"status"`
	Attachments []attachmentDoc      `bson:"attachments"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (d projectDoc) toDomain() *domain.Project {
	assigned := make([]string, len(d.AssignedTo))
	for i, oid := range d.AssignedTo {
		assigned[i] = oid.Hex()
	}

	attachments := make([]domain.Attachment, len(d.Attachments))
	for i, a := range d.Attachments {
		attachments[i] = domain.Attachment{
			Filename:     a.Filename,
			OriginalName: a.OriginalName,
			MimeType:     a.MimeType,
			Size:         a.Size,
			URL:          a.URL,
			UploadedAt:   a.UploadedAt,
		}
	}

	p := &domain.Project{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Deadline:    d.Deadline,
		Revenue:     d.Revenue,
		AssignedTo:  assigned,
		Remark:      d.Remark,
		MeetingLink: d.MeetingLink,
		Client:      d.Client,
		Status:      domain.ProjectStatus(d.Status),
		Attachments: attachments,
		CreatedAt:   d.CreatedAt,
	}
	if !d.AssignedBy.IsZero() {
		p.AssignedBy = d.AssignedBy.Hex()
	}
	return p
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidInput
	}
	return oid, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	creator, err := parseID(p.AssignedBy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDoc{
		Name:        p.Name,
		Deadline:    p.Deadline,
		Revenue:     p.Revenue,
		AssignedTo:  []primitive.ObjectID{},
		AssignedBy:  creator,
		Remark:      p.Remark,
		MeetingLink: p.MeetingLink,
		Client:      p.Client,
		Status:      string(p.Status),
		Attachments: []attachmentDoc{},
		CreatedAt:   p.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

// ListForUser implements the three-way OR of the self-scoped listing: the
// user is in the assignment set, created the project, or is the project's
// client by email. Each clause stands alone.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID, email string) ([]*domain.Project, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"assigned_to": oid},
		bson.M{"assigned_by": oid},
		bson.M{"client.email": email},
	}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	projects, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ListAssignable returns projects with an empty, absent, or null assignment
// set.
func (r *ProjectRepository) ListAssignable(ctx context.Context) ([]*domain.Project, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"assigned_to": bson.M{"$exists": false}},
		bson.M{"assigned_to": bson.M{"$size": 0}},
		bson.M{"assigned_to": nil},
	}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *ProjectRepository) ListByAssignee(ctx context.Context, userID string) ([]*domain.Project, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"assigned_to": oid}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// AddAssignees adds userIDs to the assignment set with $addToSet/$each, so
// already-present ids are absorbed, and records the acting admin. A single
// document update.
func (r *ProjectRepository) AddAssignees(ctx context.Context, projectID string, userIDs []string, assignedBy string) (*domain.Project, error) {
	oid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	actor, err := parseID(assignedBy)
	if err != nil {
		return nil, err
	}
	oids := make([]primitive.ObjectID, 0, len(userIDs))
	for _, id := range userIDs {
		uid, err := parseID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, uid)
	}

	update := bson.M{
		"$addToSet": bson.M{"assigned_to": bson.M{"$each": oids}},
		"$set":      bson.M{"assigned_by": actor},
	}
	return r.findOneAndUpdate(ctx, oid, update)
}

func (r *ProjectRepository) SetStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	oid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": bson.M{"status": string(status)}})
}

func (r *ProjectRepository) SetMeetingLink(ctx context.Context, projectID, link string) (*domain.Project, error) {
	oid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": bson.M{"meeting_link": link}})
}

func (r *ProjectRepository) AddAttachment(ctx context.Context, projectID string, att domain.Attachment) (*domain.Project, error) {
	oid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}

	doc := attachmentDoc{
		Filename:     att.Filename,
		OriginalName: att.OriginalName,
		MimeType:     att.MimeType,
		Size:         att.Size,
		URL:          att.URL,
		UploadedAt:   att.UploadedAt,
	}
	return r.findOneAndUpdate(ctx, oid, bson.M{"$push": bson.M{"attachments": doc}})
}

func (r *ProjectRepository) Update(ctx context.Context, projectID string, input ports.UpdateProjectInput) (*domain.Project, error) {
	oid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Name != nil {
		set["project_name"] = *input.Name
	}
	if input.Deadline != nil {
		set["project_deadline"] = *input.Deadline
	}
	if input.Revenue != nil {
		set["revenue"] = *input.Revenue
	}
	if input.Remark != nil {
		set["remark"] = *input.Remark
	}
	if input.MeetingLink != nil {
		set["meeting_link"] = *input.MeetingLink
	}
	if input.Status != nil {
		set["status"] = string(*input.Status)
	}
	if input.Client != nil {
		set["client"] = domain.Client{
			Name:        input.Client.Name,
			Company:     input.Client.Company,
			Email:       input.Client.Email,
			Requirement: input.Client.Requirement,
		}
	}
	if len(set) == 0 {
		return nil, domain.ErrInvalidInput
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	oid, err := parseID(projectID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// RemoveAssignee pulls userID from every project's assignment set. Used as
// the user-deletion cascade.
func (r *ProjectRepository) RemoveAssignee(ctx context.Context, userID string) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateMany(ctx,
		bson.M{"assigned_to": oid},
		bson.M{"$pull": bson.M{"assigned_to": oid}},
	)
	if err != nil {
		return fmt.Errorf("remove assignee: %w", err)
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.ProjectStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.ProjectStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}

// EnsureIndexes creates the indexes backing the listing queries.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_by", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProjectRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	projects := []*domain.Project{}
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toDomain())
	}
	return projects, cur.Err()
}

func (r *ProjectRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return doc.toDomain(), nil
}
