package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cloudnest/database"
	"cloudnest/models"
)

// AssetService is the MongoDB-backed AssetStore.
type AssetService struct {
	userCollection   *mongo.Collection
	fileCollection   *mongo.Collection
	folderCollection *mongo.Collection
	shareCollection  *mongo.Collection
}

func NewAssetService() *AssetService {
	return &AssetService{
		userCollection:   database.GetCollection(database.UsersCollection),
		fileCollection:   database.GetCollection(database.FilesCollection),
		folderCollection: database.GetCollection(database.FoldersCollection),
		shareCollection:  database.GetCollection(database.SharedCollection),
	}
}

// storeErr maps driver errors onto the service taxonomy. Backend-specific
// failures are logged here and collapsed to ErrStoreFailed so callers never
// see driver internals.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	logrus.WithError(err).WithField("op", op).Error("metadata store operation failed")
	return fmt.Errorf("%s: %w", op, ErrStoreFailed)
}

func sortDoc(sort ListSort) bson.D {
	if sort == SortByDateDesc {
		return bson.D{{Key: "date", Value: -1}}
	}
	return bson.D{{Key: "name", Value: -1}}
}

// subtreeFilter matches every row whose location is path itself or a
// descendant of it, anchored on the full segment.
func subtreeFilter(userID primitive.ObjectID, path string) bson.M {
	return bson.M{
		"user_id": userID,
		"$or": []bson.M{
			{"location": path},
			{"location": bson.M{"$regex": "^" + regexp.QuoteMeta(path) + "/"}},
		},
	}
}

// Users

func (as *AssetService) CreateUser(ctx context.Context, user *models.User) error {
	_, err := as.userCollection.InsertOne(ctx, user)
	return storeErr("create user", err)
}

func (as *AssetService) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := as.userCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return &user, nil
}

func (as *AssetService) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := as.userCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return &user, nil
}

// Files and folders

func (as *AssetService) CreateFile(ctx context.Context, file *models.File) error {
	_, err := as.fileCollection.InsertOne(ctx, file)
	return storeErr("create file", err)
}

func (as *AssetService) CreateFolder(ctx context.Context, folder *models.Folder) error {
	_, err := as.folderCollection.InsertOne(ctx, folder)
	return storeErr("create folder", err)
}

func (as *AssetService) FileByID(ctx context.Context, id primitive.ObjectID) (*models.File, error) {
	var file models.File
	err := as.fileCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if err != nil {
		return nil, storeErr("find file", err)
	}
	return &file, nil
}

func (as *AssetService) FolderByID(ctx context.Context, id primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	err := as.folderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&folder)
	if err != nil {
		return nil, storeErr("find folder", err)
	}
	return &folder, nil
}

func (as *AssetService) FolderByPath(ctx context.Context, userID primitive.ObjectID, path string) (*models.Folder, error) {
	location, name := splitCanonical(userID, path)

	var folder models.Folder
	err := as.folderCollection.FindOne(ctx, bson.M{
		"user_id":  userID,
		"location": location,
		"name":     name,
	}).Decode(&folder)
	if err != nil {
		return nil, storeErr("find folder by path", err)
	}
	return &folder, nil
}

func (as *AssetService) FilesByLocation(ctx context.Context, userID primitive.ObjectID, location string, sort ListSort) ([]models.File, error) {
	cursor, err := as.fileCollection.Find(ctx,
		bson.M{"user_id": userID, "location": location},
		options.Find().SetSort(sortDoc(sort)),
	)
	if err != nil {
		return nil, storeErr("list files", err)
	}
	defer cursor.Close(ctx)

	var files []models.File
	if err = cursor.All(ctx, &files); err != nil {
		return nil, storeErr("list files", err)
	}
	return files, nil
}

func (as *AssetService) FoldersByLocation(ctx context.Context, userID primitive.ObjectID, location string, sort ListSort) ([]models.Folder, error) {
	cursor, err := as.folderCollection.Find(ctx,
		bson.M{"user_id": userID, "location": location},
		options.Find().SetSort(sortDoc(sort)),
	)
	if err != nil {
		return nil, storeErr("list folders", err)
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, storeErr("list folders", err)
	}
	return folders, nil
}

func (as *AssetService) UserFiles(ctx context.Context, userID primitive.ObjectID, sort ListSort) ([]models.File, error) {
	cursor, err := as.fileCollection.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(sortDoc(sort)),
	)
	if err != nil {
		return nil, storeErr("list user files", err)
	}
	defer cursor.Close(ctx)

	var files []models.File
	if err = cursor.All(ctx, &files); err != nil {
		return nil, storeErr("list user files", err)
	}
	return files, nil
}

func (as *AssetService) UserFolders(ctx context.Context, userID primitive.ObjectID, sort ListSort) ([]models.Folder, error) {
	cursor, err := as.folderCollection.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(sortDoc(sort)),
	)
	if err != nil {
		return nil, storeErr("list user folders", err)
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, storeErr("list user folders", err)
	}
	return folders, nil
}

func (as *AssetService) SubtreeByPath(ctx context.Context, userID primitive.ObjectID, path string) (*Subtree, error) {
	filter := subtreeFilter(userID, path)

	fileCursor, err := as.fileCollection.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("scan subtree", err)
	}
	defer fileCursor.Close(ctx)

	subtree := &Subtree{}
	if err = fileCursor.All(ctx, &subtree.Files); err != nil {
		return nil, storeErr("scan subtree", err)
	}

	folderCursor, err := as.folderCollection.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("scan subtree", err)
	}
	defer folderCursor.Close(ctx)

	if err = folderCursor.All(ctx, &subtree.Folders); err != nil {
		return nil, storeErr("scan subtree", err)
	}
	return subtree, nil
}

// Flags

func (as *AssetService) SetFileStarred(ctx context.Context, id primitive.ObjectID, starred bool) error {
	return as.setFlag(ctx, as.fileCollection, id, "starred", starred)
}

func (as *AssetService) SetFolderStarred(ctx context.Context, id primitive.ObjectID, starred bool) error {
	return as.setFlag(ctx, as.folderCollection, id, "starred", starred)
}

func (as *AssetService) SetFolderPinned(ctx context.Context, id primitive.ObjectID, pinned bool) error {
	return as.setFlag(ctx, as.folderCollection, id, "pinned", pinned)
}

func (as *AssetService) setFlag(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, flag string, value bool) error {
	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{flag: value}},
	)
	if err != nil {
		return storeErr("set "+flag, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementFolderSize adjusts the cached size through a pipeline update so
// the value can never be stored negative. An attempted underflow is logged
// as a bookkeeping inconsistency.
func (as *AssetService) IncrementFolderSize(ctx context.Context, id primitive.ObjectID, delta int64) error {
	if delta < 0 {
		var folder models.Folder
		if err := as.folderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&folder); err == nil {
			if folder.Size+delta < 0 {
				logrus.WithFields(logrus.Fields{
					"folder_id": id.Hex(),
					"size":      folder.Size,
					"delta":     delta,
				}).Warn("folder size decrement would underflow; clamping to zero")
			}
		}
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"size": bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$size", delta}}}},
		}}},
	}

	result, err := as.folderCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return storeErr("increment folder size", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Renames

func (as *AssetService) RenameFile(ctx context.Context, id primitive.ObjectID, newName, newType, newAssetID, newURL string) error {
	result, err := as.fileCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":     newName,
			"type":     newType,
			"asset_id": newAssetID,
			"url":      newURL,
		}},
	)
	if err != nil {
		return storeErr("rename file", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (as *AssetService) RenameFolder(ctx context.Context, id primitive.ObjectID, newName, newPath string) error {
	result, err := as.folderCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":                   newName,
			"original_name_and_path": newPath,
		}},
	)
	if err != nil {
		return storeErr("rename folder", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// prefixSwapExpr replaces the leading oldPrefix of a path field with
// newPrefix. Offsets count bytes, matching len() on the Go side; the cut
// never splits a UTF-8 character because it sits exactly at the end of the
// prefix.
func prefixSwapExpr(field, oldPrefix, newPrefix string) bson.M {
	oldLen := len(oldPrefix)
	return bson.M{"$concat": bson.A{
		newPrefix,
		bson.M{"$substrBytes": bson.A{
			"$" + field,
			oldLen,
			bson.M{"$subtract": bson.A{bson.M{"$strLenBytes": "$" + field}, oldLen}},
		}},
	}}
}

// RewriteDescendantPaths rewrites the location prefix of every descendant
// row in both collections, plus the path-derived asset_id of files and the
// path snapshot of folders. The rewrite runs inside a session transaction
// where the deployment supports one, so a rename can never leave a split
// tree; on standalone deployments it degrades to sequential updates.
func (as *AssetService) RewriteDescendantPaths(ctx context.Context, userID primitive.ObjectID, oldPrefix, newPrefix string) (int64, error) {
	filter := subtreeFilter(userID, oldPrefix)

	fileUpdate := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"location": prefixSwapExpr("location", oldPrefix, newPrefix),
			"asset_id": prefixSwapExpr("asset_id", oldPrefix, newPrefix),
		}}},
	}
	folderUpdate := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"location":               prefixSwapExpr("location", oldPrefix, newPrefix),
			"original_name_and_path": prefixSwapExpr("original_name_and_path", oldPrefix, newPrefix),
		}}},
	}

	rewrite := func(sc context.Context) (int64, error) {
		fileResult, err := as.fileCollection.UpdateMany(sc, filter, fileUpdate)
		if err != nil {
			return 0, err
		}
		folderResult, err := as.folderCollection.UpdateMany(sc, filter, folderUpdate)
		if err != nil {
			return 0, err
		}
		return fileResult.ModifiedCount + folderResult.ModifiedCount, nil
	}

	session, err := database.GetClient().StartSession()
	if err != nil {
		// Standalone deployment without session support.
		n, rerr := rewrite(ctx)
		return n, storeErr("rewrite descendant paths", rerr)
	}
	defer session.EndSession(ctx)

	var rewritten int64
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		n, err := rewrite(sc)
		rewritten = n
		return nil, err
	})
	if err != nil {
		return 0, storeErr("rewrite descendant paths", err)
	}
	return rewritten, nil
}

// Deletes

func (as *AssetService) DeleteFiles(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := as.fileCollection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return storeErr("delete files", err)
}

func (as *AssetService) DeleteFolders(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := as.folderCollection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return storeErr("delete folders", err)
}

// Shares

func (as *AssetService) CreateShare(ctx context.Context, share *models.Share) error {
	_, err := as.shareCollection.InsertOne(ctx, share)
	return storeErr("create share", err)
}

func (as *AssetService) ShareByID(ctx context.Context, id string) (*models.Share, error) {
	var share models.Share
	err := as.shareCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&share)
	if err != nil {
		return nil, storeErr("find share", err)
	}
	return &share, nil
}

func (as *AssetService) DeleteShare(ctx context.Context, id string) error {
	_, err := as.shareCollection.DeleteOne(ctx, bson.M{"_id": id})
	return storeErr("delete share", err)
}

// splitCanonical splits a canonical path into the location/name pair stored
// on folder rows. The root path is the bare user id with an empty location.
func splitCanonical(userID primitive.ObjectID, path string) (string, string) {
	if path == userID.Hex() {
		return "", path
	}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return "", path
}
