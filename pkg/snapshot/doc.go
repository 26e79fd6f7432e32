// Package snapshot publishes rendered HTML snapshots.
//
// A snapshot is the serialized content of a render root at one point in
// time. Publishers store snapshots under a name and return where they went:
//
//	pub, _ := snapshot.NewDiskPublisher("snapshots")
//	loc, err := pub.Publish(ctx, "hello-0.html", html)
//
// S3Publisher writes the same objects to a bucket:
//
//	pub := snapshot.NewS3Publisher(snapshot.NewS3Client("us-east-1", ""), "my-bucket", "renders/")
package snapshot
