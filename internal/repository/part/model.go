package repository

// PartEntity is the persisted shape of a part. The json tags define the
// file format, the bson tags the mongo documents.
type PartEntity struct {
	PartNumber       string `json:"part_number" bson:"_id"`
	PartCode         string `json:"part_code" bson:"part_code"`
	MachineName      string `json:"machine_name" bson:"machine_name"`
	Material         string `json:"material" bson:"material"`
	InstallDate      string `json:"install_date" bson:"install_date"`
	RecommendedUsage int    `json:"recommended_usage" bson:"recommended_usage"`
	Category         string `json:"category" bson:"category"`
	Position         int    `json:"-" bson:"position"`
}
